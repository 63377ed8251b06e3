package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"
)

// TestMarketplaceLifecycle drives the full flow against a running
// server: signup -> login -> post item -> item appears first in /main
// -> bid -> bid appears on the detail page.
func TestMarketplaceLifecycle(t *testing.T) {
	baseURL := os.Getenv("INTEGRATION_BASE_URL")
	if baseURL == "" {
		t.Skip("INTEGRATION_BASE_URL not set; skipping integration test")
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	client := &http.Client{Timeout: 5 * time.Second, Jar: jar}

	username := fmt.Sprintf("it_user_%d", time.Now().UnixNano())
	password := "Passw0rd!"
	nickname := "IT"

	// 1. Signup
	resp, err := client.PostForm(baseURL+"/signup", url.Values{
		"username": {username},
		"password": {password},
		"nickname": {nickname},
	})
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	drain(resp)

	// 2. Login (redirect chain ends on /main thanks to the cookie jar)
	resp, err = client.PostForm(baseURL+"/login", url.Values{
		"username": {username},
		"password": {password},
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: status=%d", resp.StatusCode)
	}
	drain(resp)

	// 3. Post an item
	resp, err = postMultipart(client, baseURL+"/post_item", map[string]string{
		"title":       "Chair",
		"description": "old chair",
	}, "image", fmt.Sprintf("chair_%d.png", time.Now().UnixNano()))
	if err != nil {
		t.Fatalf("post_item failed: %v", err)
	}
	drain(resp)

	// 4. It must be first in /main's listing
	var listing struct {
		Username string `json:"username"`
		Items    []struct {
			ID       uint64 `json:"id"`
			Title    string `json:"title"`
			ImageURL string `json:"image_url"`
		} `json:"items"`
	}
	if err := getJSON(client, baseURL+"/main", &listing); err != nil {
		t.Fatalf("main listing failed: %v", err)
	}
	if listing.Username != username {
		t.Fatalf("listing username = %q, want %q", listing.Username, username)
	}
	if len(listing.Items) == 0 || listing.Items[0].Title != "Chair" {
		t.Fatalf("freshly posted item is not first in the listing: %+v", listing.Items)
	}
	itemID := listing.Items[0].ID
	if !strings.HasPrefix(listing.Items[0].ImageURL, "/static/") {
		t.Fatalf("image URL %q is not servable", listing.Items[0].ImageURL)
	}

	// 5. Bid against it
	resp, err = postMultipart(client, fmt.Sprintf("%s/item/%d/bid", baseURL, itemID), map[string]string{
		"title":       "Offer",
		"description": "$10",
	}, "image", fmt.Sprintf("offer_%d.jpg", time.Now().UnixNano()))
	if err != nil {
		t.Fatalf("bid failed: %v", err)
	}
	drain(resp)

	// 6. Detail page shows exactly one bid titled "Offer"
	var detail struct {
		Item struct {
			ID uint64 `json:"id"`
		} `json:"item"`
		Bids []struct {
			Title string `json:"title"`
		} `json:"bids"`
	}
	if err := getJSON(client, fmt.Sprintf("%s/item/%d", baseURL, itemID), &detail); err != nil {
		t.Fatalf("item detail failed: %v", err)
	}
	if len(detail.Bids) != 1 || detail.Bids[0].Title != "Offer" {
		t.Fatalf("detail bids = %+v, want one bid titled Offer", detail.Bids)
	}

	// 7. Logout, then the gated listing must bounce to /login
	resp, err = client.Get(baseURL + "/logout")
	if err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	drain(resp)
	resp, err = client.Get(baseURL + "/main")
	if err != nil {
		t.Fatalf("main after logout failed: %v", err)
	}
	defer resp.Body.Close()
	if !strings.HasSuffix(resp.Request.URL.Path, "/login") {
		t.Fatalf("main after logout landed on %q, want /login", resp.Request.URL.Path)
	}
}

func postMultipart(client *http.Client, url string, fields map[string]string, fileField, filename string) (*http.Response, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, err
		}
	}
	fw, err := w.CreateFormFile(fileField, filename)
	if err != nil {
		return nil, err
	}
	// tiny placeholder payload; the server validates the extension only
	if _, err := fw.Write([]byte{0x89, 'P', 'N', 'G'}); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, url, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return client.Do(req)
}

func getJSON(client *http.Client, url string, out any) error {
	resp, err := client.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}

package v1

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"fleamarket/api/v1/request"
	"fleamarket/internal/logging"
	"fleamarket/internal/metrics"
	"fleamarket/internal/upload"
	"fleamarket/model"
	"fleamarket/service"

	"github.com/gin-gonic/gin"
)

type MarketServiceInterface interface {
	ListItems() ([]model.Item, error)
	ItemDetail(id uint64) (*model.Item, []model.Bid, error)
	PostItem(who service.Identity, title, description, filename string, save service.SaveFunc) (*model.Item, error)
	PostBid(who service.Identity, itemID uint64, title, description, filename string, save service.SaveFunc) (*model.Bid, error)
}

// MarketAPI exposes the listing, detail and posting handlers.
type MarketAPI struct {
	service MarketServiceInterface
}

// NewMarketAPI wires the service layer into the HTTP handlers.
func NewMarketAPI(s MarketServiceInterface) *MarketAPI {
	return &MarketAPI{service: s}
}

// Main renders the item listing, newest first.
func (m *MarketAPI) Main(c *gin.Context) {
	items, err := m.service.ListItems()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"page":     "main",
		"username": c.GetString("username"),
		"items":    items,
		"flash":    takeFlash(c),
	})
}

// PostItemPage renders the item posting form payload.
func (m *MarketAPI) PostItemPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"page": "post_item", "flash": takeFlash(c)})
}

// PostItem stores the uploaded image and creates the item, then
// redirects to /main. An invalid or missing image flashes and returns
// to the form; no row is written.
func (m *MarketAPI) PostItem(c *gin.Context) {
	var form request.PostingForm
	_ = c.ShouldBind(&form)

	file, err := c.FormFile("image")
	if err != nil {
		rejectUpload(c, "/post_item", metrics.IncItemPost)
		return
	}

	item, err := m.service.PostItem(identityFrom(c), form.Title, form.Description, file.Filename,
		func(dst string) error { return c.SaveUploadedFile(file, dst) })
	if err != nil {
		if errors.Is(err, upload.ErrDisallowedType) {
			rejectUpload(c, "/post_item", metrics.IncItemPost)
			return
		}
		metrics.IncItemPost("internal_error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	metrics.IncItemPost("success")
	logging.Info("item posted", map[string]any{"item_id": item.ID, "user_id": item.UserID})
	c.Redirect(http.StatusFound, "/main")
}

// ItemDetail renders one item with all its bids. A missing id is a 404,
// not a crash.
func (m *MarketAPI) ItemDetail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		return
	}

	item, bids, err := m.service.ItemDetail(id)
	if err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page":  "item_detail",
		"item":  item,
		"bids":  bids,
		"flash": takeFlash(c),
	})
}

// BidPage renders the bid form payload for the target item.
func (m *MarketAPI) BidPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"page": "bid_item", "item_id": c.Param("id"), "flash": takeFlash(c)})
}

// PostBid stores the uploaded image and creates a bid against the
// target item id, then redirects to that item's detail page. The
// target's existence is not verified before insert.
func (m *MarketAPI) PostBid(c *gin.Context) {
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		return
	}

	var form request.PostingForm
	_ = c.ShouldBind(&form)

	bidForm := fmt.Sprintf("/item/%d/bid", itemID)

	file, err := c.FormFile("image")
	if err != nil {
		rejectUpload(c, bidForm, metrics.IncBidPost)
		return
	}

	bid, err := m.service.PostBid(identityFrom(c), itemID, form.Title, form.Description, file.Filename,
		func(dst string) error { return c.SaveUploadedFile(file, dst) })
	if err != nil {
		if errors.Is(err, upload.ErrDisallowedType) {
			rejectUpload(c, bidForm, metrics.IncBidPost)
			return
		}
		metrics.IncBidPost("internal_error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	metrics.IncBidPost("success")
	logging.Info("bid posted", map[string]any{"bid_id": bid.ID, "item_id": itemID, "user_id": bid.UserID})
	c.Redirect(http.StatusFound, fmt.Sprintf("/item/%d", itemID))
}

// rejectUpload flashes the extension error and bounces back to the
// posting form without creating a row.
func rejectUpload(c *gin.Context, formPath string, incStatus func(string)) {
	incStatus("bad_upload")
	metrics.IncUploadRejected()
	setFlash(c, upload.ErrDisallowedType.Error())
	c.Redirect(http.StatusFound, formPath)
}

// identityFrom pulls the authenticated identity the session gate put
// on the context.
func identityFrom(c *gin.Context) service.Identity {
	return service.Identity{
		UserID:   c.GetUint64("user_id"),
		Nickname: c.GetString("nickname"),
	}
}

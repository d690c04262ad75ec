package reviews

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Handler accepts review submissions and echoes them back. Nothing is stored
// and the review generator is not involved.
type Handler struct {
	Log logrus.FieldLogger
}

func NewHandler(log logrus.FieldLogger) *Handler {
	return &Handler{Log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/reviews", h.create)
}

type createReq struct {
	ProductID *Int    `json:"product_id" binding:"required"`
	Stars     *Int    `json:"stars" binding:"required"`
	Text      *string `json:"text"`
}

// Submission is the coerced form of a review request.
type Submission struct {
	ProductID int64   `json:"product_id"`
	Stars     int64   `json:"stars"`
	Text      *string `json:"text"`
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "invalid review body",
			"detail": err.Error(),
		})
		return
	}

	received := Submission{
		ProductID: int64(*req.ProductID),
		Stars:     int64(*req.Stars),
		Text:      req.Text,
	}

	if h.Log != nil {
		h.Log.WithFields(logrus.Fields{
			"product_id": received.ProductID,
			"stars":      received.Stars,
		}).Debug("review received")
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":       true,
		"received": received,
	})
}

// Int decodes a JSON integer, an integral float such as 4.0, or a numeric
// string such as "4". Anything else is rejected.
type Int int64

func (n *Int) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if strings.HasPrefix(raw, `"`) {
		unquoted, err := strconv.Unquote(raw)
		if err != nil {
			return fmt.Errorf("invalid integer %s", raw)
		}
		raw = strings.TrimSpace(unquoted)
	}

	if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
		*n = Int(v)
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) || f >= math.MaxInt64 || f < math.MinInt64 {
		return fmt.Errorf("invalid integer %s", string(b))
	}
	*n = Int(f)
	return nil
}

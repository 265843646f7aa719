package http

import (
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/IvanM-GM/replygen"
	"github.com/gin-gonic/gin"
)

var postIDRe = regexp.MustCompile(`^\d+$`)

type analyzeRequest struct {
	TwitterURL   string `json:"twitterUrl" binding:"required"`
	CommentCount int    `json:"commentCount"`
}

type validateRequest struct {
	TwitterURL string `json:"twitterUrl" binding:"required"`
}

type sentimentRequest struct {
	Text string `json:"text"`
}

type postView struct {
	URL        string              `json:"url"`
	Text       string              `json:"text"`
	Author     string              `json:"author"`
	Images     []string            `json:"images"`
	VideoURL   *string             `json:"videoUrl"`
	Engagement replygen.Engagement `json:"engagement"`
}

func newPostView(p *replygen.Post) postView {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return postView{
		URL:        p.URL,
		Text:       p.Text,
		Author:     p.Author,
		Images:     images,
		VideoURL:   p.VideoURL,
		Engagement: p.Engagement(),
	}
}

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "replygen API",
		"version": s.Version,
		"status":  "running",
	})
}

func (s *Server) handleAnalyze(c *gin.Context) {
	start := time.Now()

	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, replygen.Errorf(replygen.EINVALID, "invalid request body: %v", err), time.Since(start))
		return
	}

	a, err := s.Analyzer.Analyze(c.Request.Context(), strings.TrimSpace(req.TwitterURL), req.CommentCount)
	if err != nil {
		elapsed, ok := replygen.ErrorElapsed(err)
		if !ok {
			elapsed = time.Since(start)
		}
		s.writeError(c, err, elapsed)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"post":           newPostView(a.Post),
		"comments":       a.Comments,
		"analysis":       a.Analysis,
		"processingTime": replygen.RoundSeconds(a.Elapsed),
		"status":         "success",
	})
}

func (s *Server) handlePost(c *gin.Context) {
	id := c.Param("id")
	if !postIDRe.MatchString(id) {
		s.writeError(c, replygen.Errorf(replygen.EINVALID, "post ID must be numeric"), 0)
		return
	}

	post, err := s.Analyzer.Post(c.Request.Context(), replygen.PermalinkForID(id))
	if err != nil {
		s.writeError(c, err, 0)
		return
	}

	view := newPostView(post)
	c.JSON(http.StatusOK, gin.H{
		"postId":     id,
		"url":        view.URL,
		"text":       view.Text,
		"author":     view.Author,
		"images":     view.Images,
		"videoUrl":   view.VideoURL,
		"engagement": view.Engagement,
	})
}

func (s *Server) handleValidateURL(c *gin.Context) {
	var req validateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, replygen.Errorf(replygen.EINVALID, "invalid request body: %v", err), 0)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url":     req.TwitterURL,
		"isValid": replygen.ValidatePostURL(req.TwitterURL),
		"status":  "success",
	})
}

func (s *Server) handleSentiment(c *gin.Context) {
	var req sentimentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, replygen.Errorf(replygen.EINVALID, "invalid request body: %v", err), 0)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		s.writeError(c, replygen.Errorf(replygen.EINVALID, "text required"), 0)
		return
	}

	c.JSON(http.StatusOK, s.Analyzer.Sentiment(c.Request.Context(), req.Text))
}

func (s *Server) handleHealth(c *gin.Context) {
	generator := "disconnected"
	if s.Analyzer.Healthy(c.Request.Context()) {
		generator = "connected"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": float64(time.Now().UnixMilli()) / 1000,
		"services": gin.H{
			"fetcher":   "available",
			"generator": generator,
		},
		"version": s.Version,
	})
}

func (s *Server) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "running",
		"uptime":      s.uptime(),
		"version":     s.Version,
		"environment": s.Environment,
	})
}

func (s *Server) handleMetrics(c *gin.Context) {
	stats := replygen.Stats{Uptime: s.uptime()}
	if s.Stats != nil {
		stats = s.Stats.Stats()
	}
	c.JSON(http.StatusOK, stats)
}

// writeError renders err with the status derived from its code.
// Internal errors are logged and their details withheld.
func (s *Server) writeError(c *gin.Context, err error, elapsed time.Duration) {
	code := replygen.ErrorCode(err)
	if code == replygen.EINTERNAL {
		s.Logger.Error("internal error", "method", c.Request.Method, "path", c.Request.URL.Path, "err", err)
	}

	body := gin.H{
		"status": "error",
		"code":   code,
		"error":  replygen.ErrorMessage(err),
	}
	if c.FullPath() == APIPrefix+"/analyze" {
		body["processingTime"] = replygen.RoundSeconds(elapsed)
	}
	c.JSON(ErrorStatusCode(code), body)
}

// ErrorStatusCode maps an application error code to an HTTP status.
func ErrorStatusCode(code string) int {
	switch code {
	case replygen.EINVALID, replygen.EINVALIDURL:
		return http.StatusBadRequest
	case replygen.ENOTFOUND:
		return http.StatusNotFound
	case replygen.ETIMEOUT:
		return http.StatusGatewayTimeout
	case replygen.EFETCH, replygen.EGENERATE, replygen.ESHAPE, replygen.EPARSE:
		return http.StatusBadGateway
	case replygen.EEXTRACT:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

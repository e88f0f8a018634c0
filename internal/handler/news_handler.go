package handler

import (
	"bizinsights/internal/model"
	"bizinsights/internal/repository"
	"bizinsights/pkg/news"
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HeadlineFetcher interface {
	TopHeadlines(ctx context.Context, q news.HeadlineQuery) ([]news.Article, error)
	Defaults() news.HeadlineQuery
}

type NewsStore interface {
	UpsertByURL(ctx context.Context, n *model.News) error
	GetByExternalID(ctx context.Context, externalID string) (*model.News, error)
	Save(ctx context.Context, uid string, newsID int64) error
	Like(ctx context.Context, uid string, newsID int64) error
}

type NewsHandler struct {
	headlines  HeadlineFetcher
	summarizer Summarizer
	store      NewsStore
	opts       Options
}

func NewNewsHandler(headlines HeadlineFetcher, summarizer Summarizer, store NewsStore, opts Options) *NewsHandler {
	return &NewsHandler{
		headlines:  headlines,
		summarizer: summarizer,
		store:      store,
		opts:       opts,
	}
}

// listedArticle is what GetNews remembers about each article it returned, so
// the lookup routes can find it again after it leaves the live headlines.
type listedArticle struct {
	Article news.Article `json:"article"`
	Summary []string     `json:"summary"`
}

func (h *NewsHandler) GetNews(c *gin.Context) {
	q := h.queryFromRequest(c)
	ctx := c.Request.Context()

	key := fmt.Sprintf("news:%s:%s:%d", q.Country, q.Category, q.PageSize)

	var res []NewsArticleResponse
	if cacheGet(ctx, h.opts, key, &res) {
		c.JSON(http.StatusOK, res)
		return
	}

	articles, err := h.headlines.TopHeadlines(ctx, q)
	if err != nil {
		serverError(c, "Error fetching news data", err)
		return
	}

	texts := make([]string, len(articles))
	for i, a := range articles {
		texts[i] = articleText(a)
	}
	summaries := h.summarizer.SummarizeAll(ctx, texts, h.opts.SummaryConcurrency)

	res = make([]NewsArticleResponse, len(articles))
	for i, a := range articles {
		res[i] = toNewsArticleResponse(a, summaries[i])
	}

	// The index is written after the list so its entries never expire first.
	cacheSet(ctx, h.opts, key, res)
	for i, a := range articles {
		cacheSet(ctx, h.opts, articleKey(res[i].ID), listedArticle{Article: a, Summary: summaries[i]})
	}

	c.JSON(http.StatusOK, res)
}

func (h *NewsHandler) GetNewsByID(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	listed, err := h.lookup(ctx, id, h.queryFromRequest(c))
	if err != nil {
		serverError(c, "Error fetching news article", err)
		return
	}

	if listed == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "News article not found"})
		return
	}

	c.JSON(http.StatusOK, toNewsArticleResponse(listed.Article, listed.Summary))
}

func (h *NewsHandler) SaveNews(c *gin.Context) {
	h.link(c, h.store.Save, "News saved successfully", "Error saving news")
}

func (h *NewsHandler) LikeNews(c *gin.Context) {
	h.link(c, h.store.Like, "News liked successfully", "Error liking news")
}

func (h *NewsHandler) link(c *gin.Context, linkFn func(ctx context.Context, uid string, newsID int64) error, okMessage, errMessage string) {
	var req SaveNewsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.NewsID == "" || req.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "newsId and userId are required"})
		return
	}
	ctx := c.Request.Context()

	stored, err := h.resolveNews(ctx, req.NewsID, h.queryFromRequest(c))
	if err != nil {
		serverError(c, errMessage, err)
		return
	}

	if stored == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "News article not found"})
		return
	}

	err = linkFn(ctx, req.UserID, stored.ID)
	if errors.Is(err, repository.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	if errors.Is(err, repository.ErrNewsNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "News article not found"})
		return
	}
	if err != nil {
		serverError(c, errMessage, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": okMessage,
		"newsId":  req.NewsID,
		"userId":  req.UserID,
	})
}

// resolveNews returns the stored article with the given public id, storing
// it from the listed or current headlines first when it has not been
// persisted yet.
func (h *NewsHandler) resolveNews(ctx context.Context, id string, q news.HeadlineQuery) (*model.News, error) {
	stored, err := h.store.GetByExternalID(ctx, id)
	if err != nil {
		return nil, err
	}
	if stored != nil {
		return stored, nil
	}

	listed, err := h.lookup(ctx, id, q)
	if err != nil || listed == nil {
		return nil, err
	}

	category := model.CategoryGeneral
	if model.ValidCategory(q.Category) {
		category = q.Category
	}

	a := listed.Article
	n := &model.News{
		ExternalID:  id,
		Title:       a.Title,
		Summary:     listed.Summary,
		Content:     a.Content,
		ImageURL:    a.ImageURL,
		PublishedAt: a.PublishedAt,
		Source:      a.Publisher,
		URL:         a.URL,
		Category:    category,
	}
	if err := h.store.UpsertByURL(ctx, n); err != nil {
		return nil, err
	}

	return n, nil
}

// lookup finds an article by public id, first among the articles GetNews
// recently listed, then in the live headlines for q. The summary is filled
// in either way.
func (h *NewsHandler) lookup(ctx context.Context, id string, q news.HeadlineQuery) (*listedArticle, error) {
	var listed listedArticle
	if cacheGet(ctx, h.opts, articleKey(id), &listed) {
		return &listed, nil
	}

	articles, err := h.headlines.TopHeadlines(ctx, q)
	if err != nil {
		return nil, err
	}

	for _, a := range articles {
		if news.ArticleID(a.URL) == id {
			return &listedArticle{
				Article: a,
				Summary: h.summarizer.Summarize(ctx, articleText(a)),
			}, nil
		}
	}

	return nil, nil
}

// queryFromRequest reads the country, category and pageSize overrides,
// filling the rest from the client defaults.
func (h *NewsHandler) queryFromRequest(c *gin.Context) news.HeadlineQuery {
	return h.resolveQuery(news.HeadlineQuery{
		Country:  c.Query("country"),
		Category: c.Query("category"),
		PageSize: getQueryPageSize(c),
	})
}

func (h *NewsHandler) resolveQuery(q news.HeadlineQuery) news.HeadlineQuery {
	defaults := h.headlines.Defaults()
	if q.Country == "" {
		q.Country = defaults.Country
	}
	if q.Category == "" {
		q.Category = defaults.Category
	}
	if q.PageSize <= 0 {
		q.PageSize = defaults.PageSize
	}
	return q
}

func articleKey(id string) string {
	return "news:article:" + id
}

func articleText(a news.Article) string {
	if a.Content != "" {
		return a.Content
	}
	return a.Description
}

func toNewsArticleResponse(a news.Article, summary []string) NewsArticleResponse {
	return NewsArticleResponse{
		ID:          news.ArticleID(a.URL),
		Title:       a.Title,
		Summary:     summary,
		Content:     a.Content,
		ImageURL:    a.ImageURL,
		PublishedAt: formatTime(a.PublishedAt),
		Source:      a.Publisher,
		URL:         a.URL,
	}
}

// Package blog serves the published blog posts.
package blog

import (
	"bytes"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"

	blogctl "github.com/CashGlitch/CashGlitch/internal/db/controller/blog"
	"github.com/CashGlitch/CashGlitch/internal/db/models"
	"github.com/CashGlitch/CashGlitch/internal/web/handler"
)

// Path is the route prefix of the blog API.
const Path = handler.APIPrefix + "/blog"

// markdown renders post bodies. Raw HTML in posts is escaped since WithUnsafe is not set.
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(goldmarkhtml.WithHardWraps()),
)

// Post is the JSON shape of a blog post.
type Post struct {
	ID          uint64    `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	ContentHTML string    `json:"contentHtml,omitempty"`
	Excerpt     string    `json:"excerpt"`
	Published   bool      `json:"published"`
	AuthorEmail string    `json:"authorEmail"`
	ImageURL    *string   `json:"imageUrl"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toPost(p *models.BlogPost) Post {
	return Post{
		ID:          p.ID,
		Slug:        p.Slug,
		Title:       p.Title,
		Content:     p.Content,
		Excerpt:     p.Excerpt,
		Published:   p.Published,
		AuthorEmail: p.AuthorEmail,
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// RenderMarkdown converts a post body to HTML.
func RenderMarkdown(src string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// Service is the blog handler service.
type Service struct {
	handler.Service
	deps *handler.Deps
}

// Init registers the blog routes.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if err := deps.Validate(app); err != nil {
		return err
	}

	s.deps = deps

	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RootPath, s.List)
		router.Get("/:slug", s.Get)
	})

	return nil
}

// List returns all published posts, newest first.
func (s *Service) List(c *fiber.Ctx) error {
	ctx := c.UserContext()

	if err := s.deps.Content.InitializeBlog(ctx); err != nil {
		return handler.Internal(c, err, "Failed to fetch blog posts")
	}

	posts, err := blogctl.ListPublished(ctx, s.deps.DB)
	if err != nil {
		return handler.Internal(c, err, "Failed to fetch blog posts")
	}

	out := make([]Post, 0, len(posts))
	for i := range posts {
		out = append(out, toPost(&posts[i]))
	}

	return c.JSON(out)
}

// Get returns one published post with its rendered body.
func (s *Service) Get(c *fiber.Ctx) error {
	ctx := c.UserContext()
	slug := c.Params("slug")

	if err := s.deps.Content.InitializeBlog(ctx); err != nil {
		return handler.Internal(c, err, "Failed to fetch blog post")
	}

	post, err := blogctl.GetPublishedBySlug(ctx, s.deps.DB, slug)
	if err != nil {
		if errors.Is(err, blogctl.ErrPostNotFound) || errors.Is(err, blogctl.ErrSlugEmpty) {
			return handler.NotFound("Post not found")
		}

		return handler.Internal(c, err, "Failed to fetch blog post")
	}

	out := toPost(post)

	out.ContentHTML, err = RenderMarkdown(post.Content)
	if err != nil {
		return handler.Internal(c, err, "Failed to render blog post")
	}

	return c.JSON(out)
}

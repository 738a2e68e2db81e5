// Package feeds generates the public sitemap.xml and RSS feed.xml.
package feeds

import (
	"context"
	"fmt"
	"time"

	"github.com/beevik/etree"

	contentrepo "modtok/internal/content/repository"
	"modtok/internal/shared/kinds"
	"modtok/platform/config"
)

const feedEntryLimit = 50

// EntityPage is one published catalog entity reachable on the site.
type EntityPage struct {
	Type      kinds.EntityType
	Slug      string
	UpdatedAt string
}

// CatalogPageLister lists published entities for sitemap generation.
type CatalogPageLister interface {
	ListPublishedPages(ctx context.Context, entityType kinds.EntityType) ([]EntityPage, error)
}

// ContentLister lists published editorial entries.
type ContentLister interface {
	ListPublishedForFeeds(ctx context.Context, limit int) ([]contentrepo.Entry, error)
}

// Generator builds feed documents from the catalog and content stores.
type Generator struct {
	catalog CatalogPageLister
	content ContentLister
	site    config.SiteConfig
}

// NewGenerator creates a feed generator.
func NewGenerator(catalog CatalogPageLister, content ContentLister, site config.SiteConfig) *Generator {
	return &Generator{catalog: catalog, content: content, site: site}
}

// Sitemap renders sitemap.xml covering entity pages and editorial entries.
func (g *Generator) Sitemap(ctx context.Context) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	urlset := doc.CreateElement("urlset")
	urlset.CreateAttr("xmlns", "http://www.sitemaps.org/schemas/sitemap/0.9")

	base := g.site.GetSiteBaseURL()
	addURL(urlset, base, "")

	for _, entityType := range kinds.EntityTypes {
		pages, err := g.catalog.ListPublishedPages(ctx, entityType)
		if err != nil {
			return nil, fmt.Errorf("list %s pages: %w", entityType, err)
		}
		for _, page := range pages {
			addURL(urlset, fmt.Sprintf("%s/%s/%s", base, sitePathSegment(page.Type), page.Slug), page.UpdatedAt)
		}
	}

	entries, err := g.content.ListPublishedForFeeds(ctx, feedEntryLimit)
	if err != nil {
		return nil, fmt.Errorf("list content entries: %w", err)
	}
	for _, entry := range entries {
		addURL(urlset, fmt.Sprintf("%s/%s/%s", base, entry.Kind, entry.Slug), entry.UpdatedAt)
	}

	doc.Indent(2)
	return doc.WriteToBytes()
}

// RSS renders feed.xml with the latest published blog and news entries.
func (g *Generator) RSS(ctx context.Context) ([]byte, error) {
	entries, err := g.content.ListPublishedForFeeds(ctx, feedEntryLimit)
	if err != nil {
		return nil, fmt.Errorf("list content entries: %w", err)
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	rss := doc.CreateElement("rss")
	rss.CreateAttr("version", "2.0")

	channel := rss.CreateElement("channel")
	channel.CreateElement("title").SetText(g.site.GetSiteName())
	channel.CreateElement("link").SetText(g.site.GetSiteBaseURL())
	channel.CreateElement("description").SetText(g.site.GetSiteName() + " - novedades y articulos")
	channel.CreateElement("lastBuildDate").SetText(time.Now().UTC().Format(time.RFC1123Z))

	for _, entry := range entries {
		item := channel.CreateElement("item")
		item.CreateElement("title").SetText(entry.Title)
		link := fmt.Sprintf("%s/%s/%s", g.site.GetSiteBaseURL(), entry.Kind, entry.Slug)
		item.CreateElement("link").SetText(link)
		item.CreateElement("guid").SetText(link)
		if entry.Summary != nil {
			item.CreateElement("description").SetText(*entry.Summary)
		}
		if entry.PublishedAt != nil {
			item.CreateElement("pubDate").SetText(entry.PublishedAt.UTC().Format(time.RFC1123Z))
		}
	}

	doc.Indent(2)
	return doc.WriteToBytes()
}

func addURL(urlset *etree.Element, loc, lastmod string) {
	url := urlset.CreateElement("url")
	url.CreateElement("loc").SetText(loc)
	if lastmod != "" {
		url.CreateElement("lastmod").SetText(lastmod)
	}
}

func sitePathSegment(entityType kinds.EntityType) string {
	switch entityType {
	case kinds.EntityHouse:
		return "casas"
	case kinds.EntityService:
		return "servicios"
	default:
		return "fabricantes"
	}
}

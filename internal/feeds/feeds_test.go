package feeds

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/require"

	contentrepo "modtok/internal/content/repository"
	"modtok/internal/shared/kinds"
)

type stubSite struct{}

func (stubSite) GetSiteBaseURL() string { return "https://modtok.cl" }
func (stubSite) GetSiteName() string    { return "MODTOK" }

type stubCatalogLister struct {
	pages map[kinds.EntityType][]EntityPage
}

func (s *stubCatalogLister) ListPublishedPages(_ context.Context, entityType kinds.EntityType) ([]EntityPage, error) {
	return s.pages[entityType], nil
}

type stubContentLister struct {
	entries []contentrepo.Entry
}

func (s *stubContentLister) ListPublishedForFeeds(_ context.Context, _ int) ([]contentrepo.Entry, error) {
	return s.entries, nil
}

func TestSitemap_ListsEntityAndContentPages(t *testing.T) {
	published := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)
	gen := NewGenerator(
		&stubCatalogLister{pages: map[kinds.EntityType][]EntityPage{
			kinds.EntityProvider: {{Type: kinds.EntityProvider, Slug: "casas-del-sur", UpdatedAt: "2026-02-01"}},
			kinds.EntityHouse:    {{Type: kinds.EntityHouse, Slug: "modelo-lago-60", UpdatedAt: "2026-02-05"}},
		}},
		&stubContentLister{entries: []contentrepo.Entry{
			{Kind: "blog", Slug: "guia-permisos", Title: "Guia de permisos", PublishedAt: &published},
		}},
		stubSite{},
	)

	body, err := gen.Sitemap(context.Background())
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(body))

	urlset := doc.SelectElement("urlset")
	require.NotNil(t, urlset)
	require.Equal(t, "http://www.sitemaps.org/schemas/sitemap/0.9", urlset.SelectAttrValue("xmlns", ""))

	var locs []string
	for _, url := range urlset.SelectElements("url") {
		locs = append(locs, url.SelectElement("loc").Text())
	}
	require.Contains(t, locs, "https://modtok.cl")
	require.Contains(t, locs, "https://modtok.cl/fabricantes/casas-del-sur")
	require.Contains(t, locs, "https://modtok.cl/casas/modelo-lago-60")
	require.Contains(t, locs, "https://modtok.cl/blog/guia-permisos")
}

func TestSitemap_IncludesLastmodWhenKnown(t *testing.T) {
	gen := NewGenerator(
		&stubCatalogLister{pages: map[kinds.EntityType][]EntityPage{
			kinds.EntityProvider: {{Type: kinds.EntityProvider, Slug: "casas-del-sur", UpdatedAt: "2026-02-01"}},
		}},
		&stubContentLister{},
		stubSite{},
	)

	body, err := gen.Sitemap(context.Background())
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(body))

	for _, url := range doc.SelectElement("urlset").SelectElements("url") {
		if strings.HasSuffix(url.SelectElement("loc").Text(), "casas-del-sur") {
			require.NotNil(t, url.SelectElement("lastmod"))
			require.Equal(t, "2026-02-01", url.SelectElement("lastmod").Text())
			return
		}
	}
	t.Fatal("entity url missing from sitemap")
}

func TestRSS_ChannelAndItems(t *testing.T) {
	published := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)
	summary := "Todo sobre los permisos de edificacion."
	gen := NewGenerator(
		&stubCatalogLister{},
		&stubContentLister{entries: []contentrepo.Entry{
			{Kind: "blog", Slug: "guia-permisos", Title: "Guia de permisos", Summary: &summary, PublishedAt: &published},
			{Kind: "news", Slug: "feria-2026", Title: "Feria 2026"},
		}},
		stubSite{},
	)

	body, err := gen.RSS(context.Background())
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(body))

	rss := doc.SelectElement("rss")
	require.NotNil(t, rss)
	require.Equal(t, "2.0", rss.SelectAttrValue("version", ""))

	channel := rss.SelectElement("channel")
	require.NotNil(t, channel)
	require.Equal(t, "MODTOK", channel.SelectElement("title").Text())

	items := channel.SelectElements("item")
	require.Len(t, items, 2)

	first := items[0]
	require.Equal(t, "Guia de permisos", first.SelectElement("title").Text())
	require.Equal(t, "https://modtok.cl/blog/guia-permisos", first.SelectElement("link").Text())
	require.Equal(t, first.SelectElement("link").Text(), first.SelectElement("guid").Text())
	require.Equal(t, summary, first.SelectElement("description").Text())
	require.Equal(t, published.Format(time.RFC1123Z), first.SelectElement("pubDate").Text())

	// Unpublished dates and missing summaries simply omit the elements.
	second := items[1]
	require.Nil(t, second.SelectElement("pubDate"))
	require.Nil(t, second.SelectElement("description"))
}

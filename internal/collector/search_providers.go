package collector

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

type algoliaHit struct {
	ObjectID    string `json:"objectID"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	StoryText   string `json:"story_text"`
	Author      string `json:"author"`
	Points      *int   `json:"points"`
	NumComments *int   `json:"num_comments"`
	CreatedAtI  int64  `json:"created_at_i"`
}

func searchAlgolia(ctx context.Context, c *SearchConnector, query string) ([]searchHit, error) {
	u := queryURL(c.baseURL, "/api/v1/search_by_date", url.Values{
		"query":       {query},
		"tags":        {"story"},
		"hitsPerPage": {itoa(c.limit)},
	})
	body, err := getBody(ctx, c.client, u, nil)
	if err != nil {
		return nil, fmt.Errorf("algolia: %w", err)
	}

	var hits []algoliaHit
	if err := decodeArrayField(body, "hits", &hits); err != nil {
		return nil, fmt.Errorf("algolia: %w", err)
	}

	out := make([]searchHit, 0, len(hits))
	for _, h := range hits {
		if h.ObjectID == "" || h.Title == "" {
			continue
		}
		link := h.URL
		if link == "" {
			link = "https://news.ycombinator.com/item?id=" + h.ObjectID
		}
		item := RawItem{
			Title:       h.Title,
			URL:         link,
			Description: h.StoryText,
			Source:      c.name,
			RawData:     map[string]any{"hn_id": h.ObjectID, "author": h.Author},
		}
		if h.CreatedAtI > 0 {
			item.PublishedAt = time.Unix(h.CreatedAtI, 0)
		}
		if h.Points != nil {
			item.Popularity = popularity(float64(*h.Points))
		}
		out = append(out, searchHit{id: h.ObjectID, item: item})
	}
	return out, nil
}

type githubRepo struct {
	ID              int64  `json:"id"`
	FullName        string `json:"full_name"`
	HTMLURL         string `json:"html_url"`
	Description     string `json:"description"`
	StargazersCount int    `json:"stargazers_count"`
	Language        string `json:"language"`
	PushedAt        string `json:"pushed_at"`
	CreatedAt       string `json:"created_at"`
}

func searchGitHub(ctx context.Context, c *SearchConnector, query string) ([]searchHit, error) {
	u := queryURL(c.baseURL, "/search/repositories", url.Values{
		"q":        {query},
		"sort":     {"stars"},
		"order":    {"desc"},
		"per_page": {itoa(c.limit)},
	})
	header := http.Header{}
	header.Set("Accept", "application/vnd.github+json")
	// token 可选：缺失时走匿名额度
	if c.credential != "" {
		header.Set("Authorization", "Bearer "+c.credential)
	}
	body, err := getBody(ctx, c.client, u, header)
	if err != nil {
		return nil, fmt.Errorf("github: %w", err)
	}

	var repos []githubRepo
	if err := decodeArrayField(body, "items", &repos); err != nil {
		return nil, fmt.Errorf("github: %w", err)
	}

	out := make([]searchHit, 0, len(repos))
	for _, r := range repos {
		if r.ID == 0 || r.FullName == "" || r.HTMLURL == "" {
			continue
		}
		published := r.PushedAt
		if published == "" {
			published = r.CreatedAt
		}
		out = append(out, searchHit{
			id: strconv.FormatInt(r.ID, 10),
			item: RawItem{
				Title:       r.FullName,
				URL:         r.HTMLURL,
				Description: r.Description,
				Source:      c.name,
				Published:   published,
				Popularity:  popularity(float64(r.StargazersCount)),
				RawData:     map[string]any{"stars": r.StargazersCount, "language": r.Language},
			},
		})
	}
	return out, nil
}

type newsAPIArticle struct {
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
}

func searchNewsAPI(ctx context.Context, c *SearchConnector, query string) ([]searchHit, error) {
	u := queryURL(c.baseURL, "/v2/everything", url.Values{
		"q":        {query},
		"sortBy":   {"publishedAt"},
		"pageSize": {itoa(c.limit)},
	})
	header := http.Header{}
	header.Set("X-Api-Key", c.credential)
	body, err := getBody(ctx, c.client, u, header)
	if err != nil {
		return nil, fmt.Errorf("newsapi: %w", err)
	}

	var articles []newsAPIArticle
	if err := decodeArrayField(body, "articles", &articles); err != nil {
		return nil, fmt.Errorf("newsapi: %w", err)
	}

	out := make([]searchHit, 0, len(articles))
	for _, a := range articles {
		if a.URL == "" || a.Title == "" || a.Title == "[Removed]" {
			continue
		}
		source := c.name
		if a.Source.Name != "" {
			source = a.Source.Name
		}
		out = append(out, searchHit{
			id: a.URL,
			item: RawItem{
				Title:       a.Title,
				URL:         a.URL,
				Description: a.Description,
				Source:      source,
				Published:   a.PublishedAt,
			},
		})
	}
	return out, nil
}

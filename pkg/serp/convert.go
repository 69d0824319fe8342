package serp

import "github.com/rubiojr/scour/pkg/core"

// Explicit per-kind mapping from wire shapes to the result union. Each
// variant keeps only its own optional fields; nothing is merged across
// kinds.

func convertWeb(wire webResponse) *Response {
	resp := &Response{CorrectedQuery: wire.SearchInformation.CorrectedQuery}
	for _, o := range wire.Organic {
		resp.Items = append(resp.Items, core.ResultItem{
			Kind:     core.KindWeb,
			Title:    o.Title,
			Link:     o.Link,
			Snippet:  o.Snippet,
			Date:     o.Date,
			Position: o.Position,
			Favicon:  FaviconRef(o.Link),
		})
	}
	for _, r := range wire.RelatedSearches {
		if r.Query != "" {
			resp.RelatedSearches = append(resp.RelatedSearches, r.Query)
		}
	}
	return resp
}

func convertImages(wire imageResponse) *Response {
	resp := &Response{}
	for _, img := range wire.Images {
		resp.Items = append(resp.Items, core.ResultItem{
			Kind:     core.KindImage,
			Title:    img.Title,
			Link:     img.Link,
			Position: img.Position,
			Favicon:  FaviconRef(img.Link),
			Image: &core.ImageMeta{
				ThumbnailURL: img.ThumbnailURL,
				ImageURL:     img.ImageURL,
				SourcePage:   img.Source,
				Width:        img.ImageWidth,
				Height:       img.ImageHeight,
			},
		})
	}
	return resp
}

func convertVideos(wire videoResponse) *Response {
	resp := &Response{}
	for _, v := range wire.Videos {
		resp.Items = append(resp.Items, core.ResultItem{
			Kind:     core.KindVideo,
			Title:    v.Title,
			Link:     v.Link,
			Snippet:  v.Snippet,
			Date:     v.Date,
			Position: v.Position,
			Favicon:  FaviconRef(v.Link),
			Video: &core.VideoMeta{
				Duration: v.Duration,
				Channel:  v.Channel,
				Views:    v.Views,
				Likes:    v.Likes,
				Comments: v.Comments,
				Shares:   v.Shares,
			},
		})
	}
	return resp
}

func convertPlaces(wire placeResponse) *Response {
	resp := &Response{}
	for _, p := range wire.Places {
		resp.Items = append(resp.Items, core.ResultItem{
			Kind:     core.KindPlace,
			Title:    p.Title,
			Link:     p.Website,
			Position: p.Position,
			Favicon:  FaviconRef(p.Website),
			Place: &core.PlaceMeta{
				Address:  p.Address,
				Phone:    p.PhoneNumber,
				Category: p.Category,
				Rating:   p.Rating,
				Reviews:  p.RatingCount,
				Price:    p.PriceLevel,
			},
		})
	}
	return resp
}

func convertNews(wire newsResponse) *Response {
	resp := &Response{}
	for _, n := range wire.News {
		resp.Items = append(resp.Items, core.ResultItem{
			Kind:     core.KindNews,
			Title:    n.Title,
			Link:     n.Link,
			Snippet:  n.Snippet,
			Date:     n.Date,
			Position: n.Position,
			Favicon:  FaviconRef(n.Link),
			News: &core.NewsMeta{
				Publisher: n.Source,
				ImageURL:  n.ImageURL,
			},
		})
	}
	return resp
}

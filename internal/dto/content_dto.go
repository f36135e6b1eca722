package dto

import (
	"github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/listing"
	"github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/models"
	"github.com/sayeednote2/RatingMoviesFinal3-sub001/internal/rating"
)

type SubmitContentRequest struct {
	Title       string `json:"title"`
	ContentType string `json:"contentType"`
	Year        int    `json:"year"`
	Rating      int    `json:"rating"`
	Category    string `json:"category"`
	Language    string `json:"language"`
	AgeRating   string `json:"ageRating"`
}

type RateRequest struct {
	Value int `json:"value"`
}

// ContentResponse is a content item with its display rating.
type ContentResponse struct {
	models.Content
	AverageRating string `json:"averageRating"`
}

type PageResponse struct {
	Items      []ContentResponse `json:"items"`
	Mode       string            `json:"mode,omitempty"`
	Year       int               `json:"year,omitempty"`
	Page       int               `json:"page"`
	TotalPages int               `json:"totalPages"`
	Total      int               `json:"total"`
}

func NewContentResponse(c models.Content) ContentResponse {
	return ContentResponse{Content: c, AverageRating: rating.Display(c)}
}

func NewPageResponse(p listing.Page) PageResponse {
	items := make([]ContentResponse, len(p.Items))
	for i, c := range p.Items {
		items[i] = NewContentResponse(c)
	}
	return PageResponse{
		Items:      items,
		Page:       p.Page,
		TotalPages: p.TotalPages,
		Total:      p.Total,
	}
}

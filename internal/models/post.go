package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post represents a user-authored post stored in MongoDB. At most one image
// may be attached; ImageURL is the relative path of the stored file and is
// empty when the post has no attachment.
type Post struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Title     string             `json:"title" bson:"title"`
	Body      string             `json:"body" bson:"body"`
	ImageURL  string             `json:"imageURL,omitempty" bson:"image_url,omitempty"`
	UserID    uint               `json:"user" bson:"user_id"` // ID of the user who created the post
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updated_at"`
}

// CreatePostRequest defines the multipart form fields for creating a post.
// The optional image arrives as a separate file part ("postImage").
type CreatePostRequest struct {
	Title string `form:"title" json:"title" validate:"required"`
	Body  string `form:"body" json:"body" validate:"required"`
}

// UpdatePostRequest defines the multipart form fields for editing a post.
type UpdatePostRequest struct {
	Title string `form:"title" json:"title" validate:"required"`
	Body  string `form:"body" json:"body" validate:"required"`
}

// PostWithUser is a Post whose owner reference has been expanded to the
// public projection. The outer User field shadows the embedded owner ID in
// the JSON output.
type PostWithUser struct {
	Post
	User PublicUser `json:"user"`
}

// DefaultPageSize is the fixed page size for post listings.
const DefaultPageSize = 10

// Page is a bounded, ordered slice of posts plus paging metadata.
type Page struct {
	PostList    []PostWithUser `json:"postList"`
	PostCount   int64          `json:"postCount"`
	Limit       int64          `json:"limit"`
	PageCount   int64          `json:"pageCount"`
	CurrentPage int64          `json:"currentPage"`
	SlNo        int64          `json:"slNo"`
	HasPrevPage bool           `json:"hasPrevPage"`
	HasNextPage bool           `json:"hasNextPage"`
	Prev        *int64         `json:"prev"`
	Next        *int64         `json:"next"`
}

// NewPage assembles paging metadata for one page of results. Page numbers
// are 1-based; SlNo is the sequential number of the first item on the page.
func NewPage(posts []PostWithUser, total, page, limit int64) Page {
	if page < 1 {
		page = 1
	}
	pageCount := (total + limit - 1) / limit
	if pageCount < 1 {
		pageCount = 1
	}

	p := Page{
		PostList:    posts,
		PostCount:   total,
		Limit:       limit,
		PageCount:   pageCount,
		CurrentPage: page,
		SlNo:        (page-1)*limit + 1,
		HasPrevPage: page > 1,
		HasNextPage: page < pageCount,
	}
	if p.HasPrevPage {
		prev := page - 1
		p.Prev = &prev
	}
	if p.HasNextPage {
		next := page + 1
		p.Next = &next
	}
	return p
}

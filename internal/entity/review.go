package entity

import "time"

type Review struct {
	ID       string `json:"id"`
	TitleID  string `json:"-"`
	AuthorID string `json:"-"`
	// Author is the author's username, filled in by the repository.
	Author  string    `json:"author"`
	Text    string    `json:"text"`
	Score   int       `json:"score"`
	PubDate time.Time `json:"pub_date"`
}

func (r *Review) Kind() Kind      { return KindReview }
func (r *Review) OwnerID() string { return r.AuthorID }

type Comment struct {
	ID       string    `json:"id"`
	ReviewID string    `json:"-"`
	AuthorID string    `json:"-"`
	Author   string    `json:"author"`
	Text     string    `json:"text"`
	PubDate  time.Time `json:"pub_date"`
}

func (c *Comment) Kind() Kind      { return KindComment }
func (c *Comment) OwnerID() string { return c.AuthorID }

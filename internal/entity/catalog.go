package entity

type Category struct {
	ID   string `json:"-"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (c *Category) Kind() Kind      { return KindCategory }
func (c *Category) OwnerID() string { return "" }

type Genre struct {
	ID   string `json:"-"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (g *Genre) Kind() Kind      { return KindGenre }
func (g *Genre) OwnerID() string { return "" }

type Title struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Year        int       `json:"year"`
	Description string    `json:"description"`
	Category    *Category `json:"category"`
	Genres      []Genre   `json:"genre"`
	// Rating is the mean review score, nil while the title has no reviews.
	Rating *float64 `json:"rating"`
}

func (t *Title) Kind() Kind      { return KindTitle }
func (t *Title) OwnerID() string { return "" }

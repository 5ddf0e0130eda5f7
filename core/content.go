package core

import "time"

// Site content entities. Field names mirror the public JSON shape the site
// frontend consumes. Each write endpoint binds to the explicit struct; nothing
// merges raw request bodies into stored records.

// Header holds the site-wide contact strip and logo.
type Header struct {
	ID          int64     `json:"id"`
	Phone       string    `json:"phone"`
	Whatsapp    string    `json:"whatsapp"`
	Email       string    `json:"email"`
	Logo        string    `json:"logo"`
	SocialLinks []string  `json:"socialLinks"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Contact is the contact-page block.
type Contact struct {
	ID           int64     `json:"id"`
	Address      string    `json:"address"`
	Phone        string    `json:"phone"`
	Whatsapp     string    `json:"whatsapp"`
	Email        string    `json:"email"`
	OpeningHours string    `json:"openingHours"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Slide is one hero carousel entry; Position orders the carousel.
type Slide struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Subtitle   string    `json:"subtitle"`
	Image      string    `json:"image"`
	ButtonText string    `json:"buttonText"`
	ButtonLink string    `json:"buttonLink"`
	Position   int       `json:"position"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// About is an "about us" section.
type About struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Specialty is one service card (e.g. sports nutrition).
type Specialty struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BlogPost is a full article; Summary feeds the card listing.
type BlogPost struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	Body        string    `json:"body"`
	Image       string    `json:"image"`
	Author      string    `json:"author"`
	PublishedAt time.Time `json:"publishedAt"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Footer holds the bottom strip content.
type Footer struct {
	ID          int64     `json:"id"`
	Text        string    `json:"text"`
	Email       string    `json:"email"`
	SocialLinks []string  `json:"socialLinks"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Image is an uploaded blob addressed by a random identifier.
type Image struct {
	ID          string    `json:"id"`
	ContentType string    `json:"contentType"`
	Data        []byte    `json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
}

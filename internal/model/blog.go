package model

import "time"

// BlogPost is a blog article. Lookups use Slug, never ID.
type BlogPost struct {
	ID          int         `json:"id" yaml:"id"`
	Slug        string      `json:"slug" yaml:"slug"`
	Title       string      `json:"title" yaml:"title"`
	Description string      `json:"description" yaml:"description"`
	Category    string      `json:"category" yaml:"category"`
	Date        time.Time   `json:"date" yaml:"date"`
	Author      string      `json:"author" yaml:"author"`
	Image       string      `json:"image,omitempty" yaml:"image,omitempty"`
	Content     PostContent `json:"content" yaml:"content"`
}

// PostContent is the structured body of a blog post.
type PostContent struct {
	Intro      string        `json:"intro" yaml:"intro"`
	Sections   []PostSection `json:"sections" yaml:"sections"`
	Conclusion string        `json:"conclusion" yaml:"conclusion"`

	// RelatedCalculators lists calculator IDs promoted at the end of the post.
	RelatedCalculators []string `json:"relatedCalculators,omitempty" yaml:"relatedCalculators,omitempty"`
}

// PostSection is one titled section of a post body.
type PostSection struct {
	Title   string `json:"title" yaml:"title"`
	Content string `json:"content" yaml:"content"`
	Image   string `json:"image,omitempty" yaml:"image,omitempty"`
}

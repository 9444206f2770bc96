// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// SiteConfig is the config.json document: branding, navigation, and
// metadata for the public site. Stored documents may be partial; readers
// merge them over the defaults section by section.
type SiteConfig struct {
	Name        string       `json:"name"`
	Logo        string       `json:"logo"`
	Favicon     string       `json:"favicon"`
	Colors      SiteColors   `json:"colors"`
	Footer      FooterConfig `json:"footer"`
	SocialLinks SocialLinks  `json:"socialLinks"`
	Metadata    SiteMetadata `json:"metadata"`
	Hero        *HeroConfig  `json:"hero,omitempty"`
	Navbar      *Navbar      `json:"navbar,omitempty"`
}

// SiteColors holds the public theme colors.
type SiteColors struct {
	Primary     string `json:"primary"`
	PrimaryDark string `json:"primaryDark"`
}

// FooterConfig holds footer text and links.
type FooterConfig struct {
	Text  string       `json:"text"`
	Links []FooterLink `json:"links"`
}

// FooterLink is a single footer link.
type FooterLink struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// SocialLinks holds optional social profile URLs.
type SocialLinks struct {
	GitHub    string `json:"github,omitempty"`
	Website   string `json:"website,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	WhatsApp  string `json:"whatsapp,omitempty"`
}

// SiteMetadata holds the HTML meta title and description.
type SiteMetadata struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// HeroConfig configures the public landing hero.
type HeroConfig struct {
	Title           string `json:"title"`
	Subtitle        string `json:"subtitle"`
	Background      string `json:"background"` // "color" or "image"
	BackgroundColor string `json:"backgroundColor"`
	BackgroundImage string `json:"backgroundImage"`
	TextColor       string `json:"textColor"`
}

// Navbar configures the public navigation bar.
type Navbar struct {
	Links []NavbarLink `json:"links"`
	CTA   []NavbarCTA  `json:"cta"`
}

// NavbarLink is a plain navigation link.
type NavbarLink struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// NavbarCTA is a call-to-action button.
type NavbarCTA struct {
	Label string `json:"label"`
	URL   string `json:"url"`
	Style string `json:"style"` // "primary" or "outline"
}

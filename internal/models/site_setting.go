// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// SiteSettings is a convenience map of key/value site configuration
// (site name, social links, footer text in both languages, and so on).
type SiteSettings map[string]string

// Setting keys used across the application.
const (
	SettingSiteName      = "site_name"
	SettingSiteNameBn    = "site_name_bn"
	SettingTagline       = "tagline"
	SettingFooterText    = "footer_text"
	SettingFacebookURL   = "facebook_url"
	SettingYouTubeURL    = "youtube_url"
	SettingContactEmail  = "contact_email"
	SettingCommentPolicy = "comment_policy"
)

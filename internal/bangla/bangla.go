// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package bangla converts dates and numbers into Bengali script for the
// public site. Only Gregorian dates are rendered; Bangla-calendar dates
// are not supported.
package bangla

import (
	"strconv"
	"strings"
	"time"
)

// digits maps each ASCII digit to its Bengali counterpart.
var digits = map[rune]rune{
	'0': '০', '1': '১', '2': '২', '3': '৩', '4': '৪',
	'5': '৫', '6': '৬', '7': '৭', '8': '৮', '9': '৯',
}

// months holds Bengali names for the Gregorian months, January first.
var months = [12]string{
	"জানুয়ারি", "ফেব্রুয়ারি", "মার্চ", "এপ্রিল", "মে", "জুন",
	"জুলাই", "আগস্ট", "সেপ্টেম্বর", "অক্টোবর", "নভেম্বর", "ডিসেম্বর",
}

// weekdays holds Bengali names for the days of the week, Sunday first to
// match time.Weekday.
var weekdays = [7]string{
	"রবিবার", "সোমবার", "মঙ্গলবার", "বুধবার", "বৃহস্পতিবার", "শুক্রবার", "শনিবার",
}

// Digits converts every ASCII digit in s to Bengali script, leaving other
// characters unchanged.
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if d, ok := digits[r]; ok {
			b.WriteRune(d)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Date formats t as a Bengali date line, e.g. "১৫ আগস্ট ২০২৬".
func Date(t time.Time) string {
	day := Digits(strconv.Itoa(t.Day()))
	year := Digits(strconv.Itoa(t.Year()))
	return day + " " + months[t.Month()-1] + " " + year
}

// DateWithWeekday formats t with the weekday prefix,
// e.g. "শনিবার, ১৫ আগস্ট ২০২৬".
func DateWithWeekday(t time.Time) string {
	return weekdays[t.Weekday()] + ", " + Date(t)
}

package kumari

import (
	"net/url"
	"strings"

	"nepjobs-backend/lib/htmlutil"
	"nepjobs-backend/lib/textutil"

	"github.com/PuerkitoBio/goquery"
)

type cardFields struct {
	title   string
	company string
	link    string
}

// a layout strategy reads one card's markup and reports whether it
// recognized the layout at all. strategies are tried in order, first
// success wins.
type cardStrategy func(card *goquery.Selection, base *url.URL) (cardFields, bool)

var cardStrategies = []cardStrategy{headingCard, featuredCard}

// standard card: an h5 holds the title and detail link, a sibling h6
// holds the company.
func headingCard(card *goquery.Selection, base *url.URL) (cardFields, bool) {
	heading := card.Find("h5").First()
	if heading.Length() == 0 {
		return cardFields{}, false
	}

	fields := cardFields{title: htmlutil.CleanText(heading)}
	if href, ok := heading.Find("a").First().Attr("href"); ok {
		fields.link = htmlutil.ResolveHref(base, href)
	}
	if company := card.Find("h6").First(); company.Length() > 0 {
		fields.company = htmlutil.CleanText(company)
	}
	return fields, true
}

// featured card: a .job-info anchor carries title and link, the
// company sits in a dedicated name element or falls back to the logo
// image's alt text.
func featuredCard(card *goquery.Selection, base *url.URL) (cardFields, bool) {
	info := card.Find(".job-info").First()
	if info.Length() == 0 {
		return cardFields{}, false
	}

	fields := cardFields{title: htmlutil.CleanText(info)}
	if href, ok := info.Attr("href"); ok {
		fields.link = htmlutil.ResolveHref(base, href)
	}

	if name := card.Find(".featured-job-company-name").First(); name.Length() > 0 {
		fields.company = htmlutil.CleanText(name)
	} else if logo := card.Find(".featured-job-company-logo img").First(); logo.Length() > 0 {
		fields.company = logo.AttrOr("alt", "")
	}
	return fields, true
}

// scans the card's description list for salary and experience text by
// keyword. first match wins per field.
func scanDescription(card *goquery.Selection) (salary, experience string) {
	card.Find("ul.description li").EachWithBreak(func(_ int, li *goquery.Selection) bool {
		text := htmlutil.CleanText(li)
		if experience == "" && (strings.Contains(text, "Year") || strings.Contains(text, "Fresher")) {
			experience = text
		} else if salary == "" && (strings.Contains(text, "Nrs.") || strings.Contains(text, "Negotiable")) {
			salary = text
		}
		return salary == "" || experience == ""
	})
	return salary, experience
}

// ExtractCards parses one listing page into partial records, one per
// recognizable card, keyed by the data-jobid attribute. cards sharing
// a job id are merged immediately since a page commonly renders the
// same posting in more than one panel. a card yielding neither a
// usable title nor a usable link is dropped silently.
func ExtractCards(doc *goquery.Document, base *url.URL) *Accumulator {
	acc := NewAccumulator()

	doc.Find("[data-jobid]").Each(func(_ int, card *goquery.Selection) {
		jobID := card.AttrOr("data-jobid", "")
		if jobID == "" {
			return
		}

		var fields cardFields
		for _, strategy := range cardStrategies {
			if f, ok := strategy(card, base); ok {
				fields = f
				break
			}
		}
		if textutil.IsPlaceholder(fields.title) && textutil.IsPlaceholder(fields.link) {
			return
		}

		salary, experience := scanDescription(card)

		acc.Add(Record{
			JobID:      jobID,
			Title:      fields.title,
			Company:    fields.company,
			Link:       fields.link,
			Salary:     salary,
			Experience: experience,
		})
	})

	return acc
}

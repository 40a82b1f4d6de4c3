package kumari

import (
	"strings"

	"nepjobs-backend/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// supplementary fields read from a job's detail page.
type Details struct {
	Industry         string
	JobLevel         string
	Education        string
	DesiredCandidate string
	Experience       string
}

// ExtractDetails reads a detail page through two mutually exclusive
// layout strategies: labeled info cards when present, otherwise a
// generic label/value row list. unrecognized labels are ignored.
func ExtractDetails(doc *goquery.Document) Details {
	if cards := doc.Find(".premium-info-card"); cards.Length() > 0 {
		return detailsFromInfoCards(cards)
	}
	return detailsFromRowList(doc)
}

// layout A: info card components pairing a title element with a value
// element, dispatched by exact title text.
func detailsFromInfoCards(cards *goquery.Selection) Details {
	var d Details
	cards.Each(func(_ int, card *goquery.Selection) {
		title := card.Find(".premium-info-card-title").First()
		value := card.Find(".premium-info-card-text").First()
		if title.Length() == 0 || value.Length() == 0 {
			return
		}

		text := htmlutil.CleanText(value)
		switch htmlutil.CleanText(title) {
		case "Industry":
			d.Industry = text
		case "Job Level":
			d.JobLevel = text
		case "Education":
			d.Education = text
		case "Desired Candidate":
			d.DesiredCandidate = text
		case "Experience":
			d.Experience = text
		}
	})
	return d
}

// layout B: two-span label/value rows, dispatched by substring so
// minor label variation ("Industry" vs "Industry Type") still lands.
func detailsFromRowList(doc *goquery.Document) Details {
	var d Details
	doc.Find("ul.job-detail-box li.row").Each(func(_ int, row *goquery.Selection) {
		left := row.Find("span.basic-item__left").First()
		right := row.Find("span.basic-item__right").First()
		if left.Length() == 0 || right.Length() == 0 {
			return
		}

		label := htmlutil.CleanText(left)
		value := htmlutil.CleanText(right)
		switch {
		case strings.Contains(label, "Industry"):
			d.Industry = value
		case strings.Contains(label, "Job Level"):
			d.JobLevel = value
		case strings.Contains(label, "Education"):
			d.Education = value
		case strings.Contains(label, "Desired"):
			d.DesiredCandidate = value
		case strings.Contains(label, "Experience"):
			d.Experience = value
		}
	})
	return d
}

func (d Details) record(jobID string) Record {
	return Record{
		JobID:            jobID,
		Industry:         d.Industry,
		JobLevel:         d.JobLevel,
		Education:        d.Education,
		DesiredCandidate: d.DesiredCandidate,
		Experience:       d.Experience,
	}
}

package merojob

import "encoding/json"

// one page of the jobs API. Next is the absolute URL of the following
// page, or empty when pagination is exhausted.
type jobsPage struct {
	Results []apiJob `json:"results"`
	Next    string   `json:"next"`
}

type apiJob struct {
	ID            json.Number    `json:"id"`
	Title         string         `json:"title"`
	Client        clientInfo     `json:"client"`
	JobLocations  []jobLocation  `json:"job_locations"`
	Categories    []string       `json:"categories"`
	Deadline      string         `json:"deadline"`
	JobLevel      string         `json:"job_level"`
	Vacancies     json.Number    `json:"vacancies"`
	OfferedSalary *offeredSalary `json:"offered_salary"`
	Skills        []string       `json:"skills"`
	AbsoluteURL   string         `json:"absolute_url"`
}

type clientInfo struct {
	ClientName string `json:"client_name"`
	Location   string `json:"location"`
}

type jobLocation struct {
	Address string `json:"address"`
}

type offeredSalary struct {
	Minimum  json.Number `json:"minimum"`
	Maximum  json.Number `json:"maximum"`
	Currency string      `json:"currency"`
}

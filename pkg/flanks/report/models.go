package report

// Status is the generation state of a report.
type Status string

const (
	StatusProcessing Status = "Processing"
	StatusCompleted  Status = "Completed"
	StatusFailed     Status = "Failed"
)

// Template is an available report template.
type Template struct {
	TemplateID  string `json:"template_id"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// Report is a generated (or generating) report.
type Report struct {
	ReportID     string `json:"report_id"`
	TemplateID   string `json:"template_id,omitempty"`
	Status       Status `json:"status"`
	CreatedAt    string `json:"created_at,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// BuildRequest describes a report to generate. Language defaults to "en";
// dates are ISO formatted and optional.
type BuildRequest struct {
	TemplateID         int            `json:"template_id"`
	Query              map[string]any `json:"query"`
	TemplateAttributes map[string]any `json:"template_attributes"`
	Language           string         `json:"language"`
	StartDate          string         `json:"start_date,omitempty"`
	EndDate            string         `json:"end_date,omitempty"`
}

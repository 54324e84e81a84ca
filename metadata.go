package grabdoc

// MetadataFile is the filename of the per-resource metadata document
// written into each extraction's output directory.
const MetadataFile = "metadata.json"

// ArticleFile is the filename of the main extracted article document.
const ArticleFile = "main-article.md"

// ArticleInfo describes the extracted article itself.
type ArticleInfo struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Date   string `json:"date"`
	URL    string `json:"url"`
}

// Quality carries extraction quality signals consumers use to decide
// whether a second pass is warranted.
type Quality struct {
	WordCount        int      `json:"wordCount"`
	ExtractionMethod string   `json:"extractionMethod"`
	ContentHash      string   `json:"contentHash,omitempty"`
	Warnings         []string `json:"warnings"`
}

// Link is a resource reference discovered inside extracted article
// content. Links are not deduplicated at discovery time; the dispatcher
// dedups by URL at dispatch time, first occurrence winning.
type Link struct {
	URL          string `json:"url"`
	LinkText     string `json:"linkText"`
	Context      string `json:"context,omitempty"`
	ResourceType string `json:"resourceType"`
}

// Metadata is the per-resource metadata.json document. Links feeds the
// resource dispatcher; ResourceExtraction is written back after dispatch
// completes so the document records the full extraction tree.
type Metadata struct {
	ID                 string              `json:"id,omitempty"`
	Success            bool                `json:"success"`
	ResourceType       string              `json:"resourceType"`
	Filepath           string              `json:"filepath,omitempty"`
	Article            *ArticleInfo        `json:"metadata,omitempty"`
	Quality            *Quality            `json:"quality,omitempty"`
	Links              []Link              `json:"links,omitempty"`
	ResourceExtraction []*ExtractionResult `json:"resource_extraction,omitempty"`
	Error              string              `json:"error,omitempty"`
}

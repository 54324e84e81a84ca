package grabdoc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// FormatArticle renders the main-article.md document: a title heading, an
// attribution block, quality figures, and the extracted body.
func FormatArticle(info ArticleInfo, wordCount int, qualityLabel, body string) string {
	author := info.Author
	if author == "" {
		author = "Unknown"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", info.Title)
	fmt.Fprintf(&sb, "**Author**: %s\n", author)
	fmt.Fprintf(&sb, "**Date**: %s\n", info.Date)
	fmt.Fprintf(&sb, "**Source**: %s\n\n", info.URL)
	fmt.Fprintf(&sb, "**Word Count**: %s words\n", groupThousands(wordCount))
	fmt.Fprintf(&sb, "**Extraction Quality**: %s\n\n", qualityLabel)
	sb.WriteString("---\n\n")
	sb.WriteString(body)
	if !strings.HasSuffix(body, "\n") {
		sb.WriteString("\n")
	}
	return sb.String()
}

// CountWords counts whitespace-separated fields, the word-count measure
// reported in Quality.
func CountWords(s string) int {
	return len(strings.Fields(s))
}

// ContentHash fingerprints extracted content so the history ledger can
// tell a re-extraction that changed nothing from one that did.
func ContentHash(content string) string {
	return fmt.Sprintf("%x", xxhash.Sum64String(content))
}

// groupThousands renders n with comma separators (1234567 -> "1,234,567").
func groupThousands(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		s = "-" + s
	}
	return s
}

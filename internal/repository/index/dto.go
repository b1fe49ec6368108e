package index

import (
	"encoding/binary"
	"math"

	"github.com/docvoice/docvoice/internal/domain"
)

// Hash field names for one indexed point. FT.SEARCH derives the KNN
// distance field name from the vector field: __vector_score.
const (
	fieldContent     = "__content"
	fieldVector      = "vector"
	fieldURL         = "url"
	fieldTitle       = "title"
	fieldDescription = "description"
	fieldLanguage    = "language"
	fieldCrawlDate   = "crawl_date"
)

var returnFields = []string{
	fieldContent, fieldURL, fieldTitle, fieldDescription, fieldLanguage, fieldCrawlDate,
	"__vector_score",
}

func pointFields(p domain.IndexedPoint) map[string]string {
	return map[string]string{
		fieldContent:     p.Page.Content,
		fieldVector:      vectorToBytes(p.Vector),
		fieldURL:         p.Page.URL,
		fieldTitle:       p.Page.Meta.Title,
		fieldDescription: p.Page.Meta.Description,
		fieldLanguage:    p.Page.Meta.Language,
		fieldCrawlDate:   p.Page.Meta.CrawlDate,
	}
}

func pageFromFields(fields map[string]string) domain.Page {
	return domain.Page{
		Content: fields[fieldContent],
		URL:     fields[fieldURL],
		Meta: domain.PageMeta{
			Title:       fields[fieldTitle],
			Description: fields[fieldDescription],
			Language:    fields[fieldLanguage],
			CrawlDate:   fields[fieldCrawlDate],
		},
	}
}

func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}

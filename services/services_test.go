package services

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"trends-backend/config"
	"trends-backend/models"
	"trends-backend/utils"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq int64

// newTestDB opens a fresh named in-memory database so tests never share
// state through the SQLite connection pool.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:services_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Article{},
		&models.GlobalRanking{},
		&models.CategoryRanking{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// fakeAnnotator tags every whitespace-separated token as a noun, unless an
// explicit annotation or error is configured.
type fakeAnnotator struct {
	annotations map[string]*Annotation
	err         error
	calls       int32
}

func (f *fakeAnnotator) Annotate(_ context.Context, text string) (*Annotation, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.err != nil {
		return nil, f.err
	}
	if a, ok := f.annotations[text]; ok {
		return a, nil
	}

	tokens := []AnnotatedToken{}
	for _, form := range strings.Fields(text) {
		tokens = append(tokens, AnnotatedToken{Form: form, PosTag: "N", NerLabel: "O"})
	}
	return &Annotation{Sentences: [][]AnnotatedToken{tokens}}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		RecentWindowDays:    7,
		MaxGlobalKeywords:   2000,
		MaxCategoryKeywords: 500,
		MaxArticlesReturn:   100,
	}
}

func newTestKeywordService(t *testing.T, db *gorm.DB, annotator Annotator, stopwords utils.StopwordSet) *KeywordService {
	t.Helper()
	if stopwords == nil {
		stopwords = utils.StopwordSet{}
	}
	return NewKeywordService(db, testConfig(), annotator, stopwords)
}

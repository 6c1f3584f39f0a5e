package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrijs2005/promisekeeper/internal/proto"
	"github.com/dmitrijs2005/promisekeeper/internal/server/collaborator"
	"github.com/dmitrijs2005/promisekeeper/internal/server/models"
	"github.com/dmitrijs2005/promisekeeper/internal/server/services"
)

func TestDashboard(t *testing.T) {
	score := 50
	d := &services.Dashboard{
		Now: 100,
		Active: []models.ActivePromise{{
			Promise:         models.Promise{ID: 1, Name: "a", PromiseType: models.PromiseTypeSelf, Status: models.StatusActive, DeadlineAt: 200},
			TimeLeft:        "1m 40s",
			TimeLeftSeconds: 100,
		}},
		CurrentMissed: &models.Promise{ID: 2, Status: models.StatusMissed},
		Score:         &score,
	}

	got := Dashboard(d)
	assert.Equal(t, int64(100), got.Now)
	assert.Equal(t, []proto.Promise{{ID: 1, Name: "a", PromiseType: "self", Status: "ACTIVE", DeadlineAt: 200, TimeLeft: "1m 40s", TimeLeftSeconds: 100}}, got.Active)
	assert.Equal(t, int64(2), got.CurrentMissed.ID)
	assert.Equal(t, "MISSED", got.CurrentMissed.Status)
	assert.Equal(t, 50, *got.Score)
}

func TestDashboard_EmptyActiveIsNotNil(t *testing.T) {
	got := Dashboard(&services.Dashboard{Now: 1})
	assert.NotNil(t, got.Active)
	assert.Nil(t, got.CurrentMissed)
	assert.Nil(t, got.Score)
}

func TestSolutionsAndFormat(t *testing.T) {
	s := Solutions(&services.Solutions{
		Promise:  models.Promise{ID: 3},
		Category: models.CategoryOvercommitment,
		Raw:      "raw",
		Options:  []collaborator.Solution{{Label: "Simplified", Text: "x"}},
	})
	assert.Equal(t, "OVERCOMMITMENT", s.Category)
	assert.Equal(t, []proto.Solution{{Label: "Simplified", Text: "x"}}, s.Options)

	f := Format(&services.FormatResult{Raw: "r", Draft: collaborator.Draft{Name: "n", PromiseType: models.PromiseTypeWorld, Content: "c"}})
	assert.Equal(t, &proto.FormatPromiseResponse{Raw: "r", Name: "n", PromiseType: "world", Content: "c"}, f)
}

func TestCategories(t *testing.T) {
	got := Categories()
	assert.Len(t, got, 7)
	assert.Equal(t, "1", got[0].Code)
	assert.Equal(t, "Time constraint", got[0].Label)
}

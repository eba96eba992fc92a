package services

import (
	"testing"

	"marketplace-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateActionChange(t *testing.T) {
	sell := models.ActionSell
	aiSolutions := models.ActionAISolutions

	tests := []struct {
		name    string
		current *models.ChosenAction
		next    models.ChosenAction
		wantErr error
	}{
		{
			name:    "first sell decision accepted",
			current: nil,
			next:    models.ActionSell,
			wantErr: nil,
		},
		{
			name:    "first ai solutions decision accepted",
			current: nil,
			next:    models.ActionAISolutions,
			wantErr: nil,
		},
		{
			name:    "replayed sell rejected",
			current: &sell,
			next:    models.ActionSell,
			wantErr: ErrActionAlreadyChosen,
		},
		{
			name:    "switching decision rejected",
			current: &aiSolutions,
			next:    models.ActionSell,
			wantErr: ErrActionAlreadyChosen,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateActionChange(tt.current, tt.next)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateActionChangeRejectsUnknownAction(t *testing.T) {
	err := validateActionChange(nil, models.ChosenAction("Burn"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrActionAlreadyChosen)
}

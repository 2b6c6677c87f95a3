package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unis-raj-shah/warehouse-scheduler/pkg/core/model"
)

func TestFindEmployee_ExactVariation(t *testing.T) {
	store := &mockEmployeeStore{employees: []model.Employee{
		{ID: "emp-1", Name: "Jonathan Smith", NameVariations: []string{"Jonathan Smith", "Jon Smith"}},
		{ID: "emp-2", Name: "Maria Garcia", NameVariations: []string{"Maria Garcia"}},
	}}

	employee, err := FindEmployee(context.Background(), store, "jon smith")

	require.NoError(t, err)
	assert.Equal(t, "emp-1", employee.ID)
}

func TestFindEmployee_FuzzyMatch(t *testing.T) {
	store := &mockEmployeeStore{employees: []model.Employee{
		{ID: "emp-1", Name: "Jonathan Smith", NameVariations: []string{"Jonathan Smith"}},
	}}

	employee, err := FindEmployee(context.Background(), store, "Jonathon Smith")

	require.NoError(t, err)
	assert.Equal(t, "emp-1", employee.ID)
}

func TestFindEmployee_NoMatch(t *testing.T) {
	store := &mockEmployeeStore{employees: []model.Employee{
		{ID: "emp-1", Name: "Jonathan Smith", NameVariations: []string{"Jonathan Smith"}},
	}}

	_, err := FindEmployee(context.Background(), store, "Completely Different")

	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestFindEmployee_ListError(t *testing.T) {
	store := &mockEmployeeStore{listErr: errors.New("db down")}

	_, err := FindEmployee(context.Background(), store, "anyone")

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoMatch)
}

package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sagar-Ghorade/SmartEdu/core/catalog"
	testutil "github.com/Sagar-Ghorade/SmartEdu/tests"
)

func TestService_ComputeFee(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()

	cls := testutil.CreateClass(t, repo, "9th", catalog.BoardCBSE)
	maths := testutil.CreateSubject(t, repo, cls.ID, "Maths")
	science := testutil.CreateSubject(t, repo, cls.ID, "Science")
	bare := testutil.CreateClass(t, repo, "10th", catalog.BoardCBSE)

	testutil.CreateFee(t, repo, cls.ID, &maths.ID, catalog.FeeTypeIndividual, 1200)
	testutil.CreateFee(t, repo, cls.ID, &maths.ID, catalog.FeeTypeSubjectWise, 800)
	testutil.CreateFee(t, repo, cls.ID, nil, catalog.FeeTypeGroup, 2500)
	testutil.CreateFee(t, repo, cls.ID, nil, catalog.FeeTypeClassWise, 2000)

	tests := []struct {
		name       string
		classID    int
		subjectID  *int
		mode       string
		wantOK     bool
		wantAmount float64
	}{
		{name: "exact subject and mode", classID: cls.ID, subjectID: &maths.ID, mode: catalog.FeeTypeIndividual, wantOK: true, wantAmount: 1200},
		{name: "subject-wise fallback", classID: cls.ID, subjectID: &maths.ID, mode: catalog.FeeTypeGroup, wantOK: true, wantAmount: 800},
		{name: "class-level mode", classID: cls.ID, subjectID: &science.ID, mode: catalog.FeeTypeGroup, wantOK: true, wantAmount: 2500},
		{name: "class-wise fallback", classID: cls.ID, subjectID: &science.ID, mode: catalog.FeeTypeIndividual, wantOK: true, wantAmount: 2000},
		{name: "nothing configured", classID: bare.ID, subjectID: nil, mode: catalog.FeeTypeGroup, wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fee, ok, err := svc.ComputeFee(ctx, tt.classID, tt.subjectID, tt.mode)
			require.NoError(t, err)
			require.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.wantAmount, fee.FeeAmount)
			}
		})
	}
}

func TestService_ComputeFee_subjectWiseBeatsClassLevel(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()

	cls := testutil.CreateClass(t, repo, "9th", catalog.BoardCBSE)
	maths := testutil.CreateSubject(t, repo, cls.ID, "Maths")

	testutil.CreateFee(t, repo, cls.ID, &maths.ID, catalog.FeeTypeSubjectWise, 800)
	testutil.CreateFee(t, repo, cls.ID, nil, catalog.FeeTypeIndividual, 3000)

	fee, ok, err := svc.ComputeFee(ctx, cls.ID, &maths.ID, catalog.FeeTypeIndividual)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, float64(800), fee.FeeAmount)
}

func TestEstimate_Amount(t *testing.T) {
	tests := []struct {
		name string
		est  catalog.Estimate
		want float64
	}{
		{
			name: "primary bracket, no subjects",
			est:  catalog.Estimate{ClassLevel: 3, Board: catalog.BoardCBSE},
			want: 1500,
		},
		{
			name: "middle bracket with subjects",
			est:  catalog.Estimate{ClassLevel: 7, Board: catalog.BoardCBSE, Subjects: []string{"Maths", "Science"}},
			want: 3000,
		},
		{
			name: "bulk discount at 3 subjects",
			est:  catalog.Estimate{ClassLevel: 7, Board: catalog.BoardCBSE, Subjects: []string{"Maths", "Science", "English"}},
			want: 3000,
		},
		{
			name: "ICSE multiplier",
			est:  catalog.Estimate{ClassLevel: 9, Board: catalog.BoardICSE, Subjects: []string{"Maths", "Science", "English"}},
			want: 4450,
		},
		{
			name: "State board discount with individual mode",
			est:  catalog.Estimate{ClassLevel: 12, Board: catalog.BoardState, Subjects: []string{"Physics"}, Individual: true},
			want: 6075,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.est.Amount(), 0.001)
		})
	}
}

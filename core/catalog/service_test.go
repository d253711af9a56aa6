package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sagar-Ghorade/SmartEdu/core"
	"github.com/Sagar-Ghorade/SmartEdu/core/catalog"
	inmemdb "github.com/Sagar-Ghorade/SmartEdu/storage/database/inmem"
	testutil "github.com/Sagar-Ghorade/SmartEdu/tests"
)

func setup(t *testing.T) (*catalog.Service, catalog.Repository) {
	t.Helper()

	db, err := inmemdb.Open()
	require.NoError(t, err)
	repo := inmemdb.NewCatalogRepository(db)
	return catalog.NewService(repo), repo
}

func TestService_ListClasses(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()

	names := []string{"6th", "7th", "8th", "9th", "10th", "11th", "12th"}
	for _, name := range names {
		testutil.CreateClass(t, repo, name, catalog.BoardCBSE)
	}

	t.Run("pagination defaults", func(t *testing.T) {
		res, err := svc.ListClasses(ctx, catalog.ClassFilter{}, core.Pagination{})
		require.NoError(t, err)
		assert.Equal(t, 1, res.Page)
		assert.Equal(t, 5, res.Limit)
		assert.Equal(t, 7, res.Total)
		assert.Equal(t, 2, res.TotalPages)
		assert.Len(t, res.Data, 5)
	})

	t.Run("second page", func(t *testing.T) {
		res, err := svc.ListClasses(ctx, catalog.ClassFilter{}, core.Pagination{Page: 2, Limit: 3})
		require.NoError(t, err)
		assert.Equal(t, 7, res.Total)
		assert.Equal(t, 3, res.TotalPages)

		classes := res.Data.([]catalog.Class)
		require.Len(t, classes, 3)
		assert.Equal(t, "9th", classes[0].ClassName)
	})

	t.Run("search", func(t *testing.T) {
		res, err := svc.ListClasses(ctx, catalog.ClassFilter{Search: "11"}, core.Pagination{})
		require.NoError(t, err)
		assert.Equal(t, 1, res.Total)
	})

	t.Run("sort desc", func(t *testing.T) {
		res, err := svc.ListClasses(ctx, catalog.ClassFilter{Sort: "class_name", Order: "desc"}, core.Pagination{Limit: 10})
		require.NoError(t, err)

		classes := res.Data.([]catalog.Class)
		require.Len(t, classes, 7)
		assert.Equal(t, "9th", classes[0].ClassName) // lexicographic
	})

	t.Run("unknown sort field falls back to id", func(t *testing.T) {
		res, err := svc.ListClasses(ctx, catalog.ClassFilter{Sort: "board; DROP TABLE classes"}, core.Pagination{Limit: 10})
		require.NoError(t, err)

		classes := res.Data.([]catalog.Class)
		require.Len(t, classes, 7)
		assert.Equal(t, "6th", classes[0].ClassName)
	})

	t.Run("no match is an empty page", func(t *testing.T) {
		res, err := svc.ListClasses(ctx, catalog.ClassFilter{Search: "nope"}, core.Pagination{})
		require.NoError(t, err)
		assert.Equal(t, 0, res.Total)
		assert.Equal(t, 0, res.TotalPages)
		assert.Empty(t, res.Data)
	})
}

func TestService_AddClass(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	cls, err := svc.AddClass(ctx, catalog.NewClass{ClassName: "6th", Board: catalog.BoardCBSE})
	require.NoError(t, err)
	assert.NotZero(t, cls.ID)

	// same name under another board is fine
	_, err = svc.AddClass(ctx, catalog.NewClass{ClassName: "6th", Board: catalog.BoardICSE})
	require.NoError(t, err)

	_, err = svc.AddClass(ctx, catalog.NewClass{ClassName: "6th", Board: catalog.BoardCBSE})
	assert.Equal(t, catalog.ErrClassExists, err)
}

func TestService_AddSubject(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()

	cls := testutil.CreateClass(t, repo, "6th", catalog.BoardCBSE)

	_, err := svc.AddSubject(ctx, catalog.NewSubject{ClassID: cls.ID + 99, SubjectName: "Maths"})
	assert.Equal(t, catalog.ErrClassNotFound, err)

	sub, err := svc.AddSubject(ctx, catalog.NewSubject{ClassID: cls.ID, SubjectName: "Maths"})
	require.NoError(t, err)
	assert.Equal(t, cls.ID, sub.ClassID)

	_, err = svc.AddSubject(ctx, catalog.NewSubject{ClassID: cls.ID, SubjectName: "Maths"})
	assert.Equal(t, catalog.ErrSubjectExists, err)
}

func TestService_AddTest(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()

	cls := testutil.CreateClass(t, repo, "6th", catalog.BoardCBSE)
	sub := testutil.CreateSubject(t, repo, cls.ID, "Maths")

	_, err := svc.AddTest(ctx, catalog.NewTest{SubjectID: sub.ID + 99, TestType: "Unit Test", TotalMarks: 80})
	assert.Equal(t, catalog.ErrTestNotFound, err)

	tst, err := svc.AddTest(ctx, catalog.NewTest{SubjectID: sub.ID, TestType: "Unit Test", TotalMarks: 80})
	require.NoError(t, err)
	assert.Equal(t, 80, tst.TotalMarks)

	_, err = svc.AddTest(ctx, catalog.NewTest{SubjectID: sub.ID, TestType: "Unit Test", TotalMarks: 100})
	assert.Equal(t, catalog.ErrTestExists, err)
}

func TestService_AddFee(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()

	cls := testutil.CreateClass(t, repo, "6th", catalog.BoardCBSE)
	sub := testutil.CreateSubject(t, repo, cls.ID, "Maths")
	other := testutil.CreateClass(t, repo, "7th", catalog.BoardCBSE)

	_, err := svc.AddFee(ctx, catalog.NewFee{ClassID: cls.ID + 99, FeeType: catalog.FeeTypeClassWise, FeeAmount: 2000})
	assert.Equal(t, catalog.ErrClassNotFound, err)

	// subject must belong to the fee's class
	_, err = svc.AddFee(ctx, catalog.NewFee{ClassID: other.ID, SubjectID: &sub.ID, FeeType: catalog.FeeTypeSubjectWise, FeeAmount: 500})
	assert.Equal(t, catalog.ErrSubjectNotFound, err)

	fee, err := svc.AddFee(ctx, catalog.NewFee{ClassID: cls.ID, FeeType: catalog.FeeTypeClassWise, FeeAmount: 2000})
	require.NoError(t, err)
	assert.Nil(t, fee.SubjectID)

	_, err = svc.AddFee(ctx, catalog.NewFee{ClassID: cls.ID, FeeType: catalog.FeeTypeClassWise, FeeAmount: 2500})
	assert.Equal(t, catalog.ErrFeeExists, err)

	// subject-level fee with the same type is a different configuration
	_, err = svc.AddFee(ctx, catalog.NewFee{ClassID: cls.ID, SubjectID: &sub.ID, FeeType: catalog.FeeTypeClassWise, FeeAmount: 700})
	require.NoError(t, err)

	infos, err := svc.ListFees(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "6th", infos[0].ClassName)
}

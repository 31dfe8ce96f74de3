package memory

import (
	"context"
	"sort"

	"github.com/dmitrijs2005/duoledger/internal/common"
	"github.com/dmitrijs2005/duoledger/internal/server/models"
)

// defaultCategories mirrors the rows seeded by the SQL migrations.
var defaultCategories = []models.Category{
	{ID: "7b1d7c4e-0a51-4c8e-9f0e-1a0000000001", Name: "Salary", Type: models.TransactionIncome, Color: "#10B981", Icon: "Briefcase", IsDefault: true},
	{ID: "7b1d7c4e-0a51-4c8e-9f0e-1a0000000002", Name: "Freelance", Type: models.TransactionIncome, Color: "#8B5CF6", Icon: "Code", IsDefault: true},
	{ID: "7b1d7c4e-0a51-4c8e-9f0e-1a0000000003", Name: "Investments", Type: models.TransactionIncome, Color: "#F59E0B", Icon: "TrendingUp", IsDefault: true},
	{ID: "7b1d7c4e-0a51-4c8e-9f0e-1a0000000004", Name: "Business", Type: models.TransactionIncome, Color: "#3B82F6", Icon: "Building", IsDefault: true},
	{ID: "7b1d7c4e-0a51-4c8e-9f0e-1a0000000005", Name: "Other income", Type: models.TransactionIncome, Color: "#6B7280", Icon: "Plus", IsDefault: true},
	{ID: "7b1d7c4e-0a51-4c8e-9f0e-1a0000000011", Name: "Groceries", Type: models.TransactionExpense, Color: "#EF4444", Icon: "ShoppingCart", IsDefault: true},
	{ID: "7b1d7c4e-0a51-4c8e-9f0e-1a0000000012", Name: "Transport", Type: models.TransactionExpense, Color: "#F97316", Icon: "Car", IsDefault: true},
	{ID: "7b1d7c4e-0a51-4c8e-9f0e-1a0000000013", Name: "Housing", Type: models.TransactionExpense, Color: "#84CC16", Icon: "Home", IsDefault: true},
	{ID: "7b1d7c4e-0a51-4c8e-9f0e-1a0000000014", Name: "Utilities", Type: models.TransactionExpense, Color: "#06B6D4", Icon: "Zap", IsDefault: true},
	{ID: "7b1d7c4e-0a51-4c8e-9f0e-1a0000000015", Name: "Entertainment", Type: models.TransactionExpense, Color: "#8B5CF6", Icon: "GameController2", IsDefault: true},
	{ID: "7b1d7c4e-0a51-4c8e-9f0e-1a0000000016", Name: "Health", Type: models.TransactionExpense, Color: "#EC4899", Icon: "Heart", IsDefault: true},
	{ID: "7b1d7c4e-0a51-4c8e-9f0e-1a0000000017", Name: "Education", Type: models.TransactionExpense, Color: "#10B981", Icon: "GraduationCap", IsDefault: true},
	{ID: "7b1d7c4e-0a51-4c8e-9f0e-1a0000000018", Name: "Clothing", Type: models.TransactionExpense, Color: "#F59E0B", Icon: "Shirt", IsDefault: true},
	{ID: "7b1d7c4e-0a51-4c8e-9f0e-1a0000000019", Name: "Technology", Type: models.TransactionExpense, Color: "#6366F1", Icon: "Smartphone", IsDefault: true},
	{ID: "7b1d7c4e-0a51-4c8e-9f0e-1a0000000020", Name: "Other expenses", Type: models.TransactionExpense, Color: "#6B7280", Icon: "MoreHorizontal", IsDefault: true},
}

type categoryRepo struct {
	h handle
}

func (r *categoryRepo) List(_ context.Context, typ models.TransactionType) ([]models.Category, error) {
	defer r.h.lock()()

	result := make([]models.Category, 0, len(r.h.m.st.categories))
	for _, c := range r.h.m.st.categories {
		if typ == "" || c.Type == typ {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].IsDefault != result[j].IsDefault {
			return result[i].IsDefault
		}
		return result[i].Name < result[j].Name
	})
	return result, nil
}

func (r *categoryRepo) GetByID(_ context.Context, id string) (*models.Category, error) {
	defer r.h.lock()()

	if c, ok := r.h.m.st.categories[id]; ok {
		return &c, nil
	}
	return nil, common.ErrorNotFound
}

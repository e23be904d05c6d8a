package service

import (
	"context"
	"testing"

	"cookbook/internal/entity"
	"cookbook/internal/entity/dto"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
func intPtr(n int) *int       { return &n }

func seedRecipe(t *testing.T, repo *fakeRepo, name string) *entity.DbRecipe {
	t.Helper()
	recipe := &entity.DbRecipe{Name: name}
	if err := repo.CreateRecipe(context.Background(), recipe); err != nil {
		t.Fatalf("seed recipe: %v", err)
	}
	return recipe
}

// associationsByName 把当前关联折叠成 name -> (description, optional)，方便断言
func associationsByName(t *testing.T, repo *fakeRepo, recipeID uint) map[string]entity.DbRecipeItem {
	t.Helper()
	cons, err := repo.ListRecipeItems(context.Background(), recipeID)
	if err != nil {
		t.Fatalf("list recipe items: %v", err)
	}
	out := make(map[string]entity.DbRecipeItem, len(cons))
	for _, con := range cons {
		if con.Item == nil {
			t.Fatalf("association %d/%d missing item", con.RecipeID, con.ItemID)
		}
		out[con.Item.Name] = con
	}
	return out
}

func tagNames(t *testing.T, repo *fakeRepo, recipeID uint) map[string]struct{} {
	t.Helper()
	cons, err := repo.ListRecipeTags(context.Background(), recipeID)
	if err != nil {
		t.Fatalf("list recipe tags: %v", err)
	}
	out := make(map[string]struct{}, len(cons))
	for _, con := range cons {
		if con.Tag == nil {
			t.Fatalf("association %d/%d missing tag", con.RecipeID, con.TagID)
		}
		out[con.Tag.Name] = struct{}{}
	}
	return out
}

func TestPlanIngredients(t *testing.T) {
	eggs := &entity.DbItem{ID: 1, Name: "eggs"}
	milk := &entity.DbItem{ID: 2, Name: "milk"}

	tests := []struct {
		name        string
		current     []entity.DbRecipeItem
		desired     []dto.RecipeItemInput
		wantStale   int
		wantUpserts int
	}{
		{
			name:        "空到空",
			current:     nil,
			desired:     nil,
			wantStale:   0,
			wantUpserts: 0,
		},
		{
			name:    "全部新增",
			current: nil,
			desired: []dto.RecipeItemInput{
				{Name: "eggs"}, {Name: "milk"},
			},
			wantStale:   0,
			wantUpserts: 2,
		},
		{
			name: "目标为空时全部过期",
			current: []entity.DbRecipeItem{
				{RecipeID: 1, ItemID: 1, Item: eggs},
				{RecipeID: 1, ItemID: 2, Item: milk},
			},
			desired:     []dto.RecipeItemInput{},
			wantStale:   2,
			wantUpserts: 0,
		},
		{
			name: "保留一个移除一个",
			current: []entity.DbRecipeItem{
				{RecipeID: 1, ItemID: 1, Item: eggs},
				{RecipeID: 1, ItemID: 2, Item: milk},
			},
			desired:     []dto.RecipeItemInput{{Name: "eggs"}},
			wantStale:   1,
			wantUpserts: 1,
		},
		{
			name: "名称带空白时不视为过期",
			current: []entity.DbRecipeItem{
				{RecipeID: 1, ItemID: 1, Item: eggs},
			},
			desired:     []dto.RecipeItemInput{{Name: " eggs "}},
			wantStale:   0,
			wantUpserts: 1,
		},
		{
			name: "重复描述符保留在 upsert 列表",
			current: []entity.DbRecipeItem{
				{RecipeID: 1, ItemID: 1, Item: eggs},
			},
			desired: []dto.RecipeItemInput{
				{Name: "eggs", Description: strPtr("2")},
				{Name: "eggs", Description: strPtr("3")},
			},
			wantStale:   0,
			wantUpserts: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := planIngredients(tt.current, tt.desired)
			if len(plan.stale) != tt.wantStale {
				t.Errorf("expected %d stale, got %d", tt.wantStale, len(plan.stale))
			}
			if len(plan.upserts) != tt.wantUpserts {
				t.Errorf("expected %d upserts, got %d", tt.wantUpserts, len(plan.upserts))
			}
		})
	}
}

func TestReconcileIngredientsCreate(t *testing.T) {
	repo := newFakeRepo()
	recipe := seedRecipe(t, repo, "Omelette")
	rec := NewReconciler(repo)

	desired := []dto.RecipeItemInput{
		{Name: "eggs", Description: strPtr("3 large")},
		{Name: "milk", Description: strPtr("a splash"), Optional: boolPtr(true)},
		{Name: "butter"},
	}
	if err := rec.ReconcileIngredients(context.Background(), recipe, desired); err != nil {
		t.Fatalf("reconcile: %v", err)
	}

	cons := associationsByName(t, repo, recipe.ID)
	if len(cons) != 3 {
		t.Fatalf("expected 3 associations, got %d", len(cons))
	}
	if cons["eggs"].Description != "3 large" || cons["eggs"].Optional {
		t.Errorf("unexpected eggs association: %+v", cons["eggs"])
	}
	if !cons["milk"].Optional {
		t.Errorf("expected milk to be optional")
	}
	if cons["butter"].Description != "" || cons["butter"].Optional {
		t.Errorf("expected butter defaults, got %+v", cons["butter"])
	}

	// 目录中创建了三个食材
	items, _ := repo.ListItems(context.Background())
	if len(items) != 3 {
		t.Errorf("expected 3 catalogue items, got %d", len(items))
	}
}

func TestReconcileIngredientsIdempotent(t *testing.T) {
	repo := newFakeRepo()
	recipe := seedRecipe(t, repo, "Omelette")
	rec := NewReconciler(repo)

	desired := []dto.RecipeItemInput{
		{Name: "eggs", Description: strPtr("3 large")},
		{Name: "milk"},
	}
	for i := 0; i < 3; i++ {
		if err := rec.ReconcileIngredients(context.Background(), recipe, desired); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}

	cons := associationsByName(t, repo, recipe.ID)
	if len(cons) != 2 {
		t.Fatalf("expected 2 associations after repeated runs, got %d", len(cons))
	}
	items, _ := repo.ListItems(context.Background())
	if len(items) != 2 {
		t.Errorf("expected 2 catalogue items, got %d", len(items))
	}
}

func TestReconcileIngredientsRemovesStale(t *testing.T) {
	repo := newFakeRepo()
	recipe := seedRecipe(t, repo, "Omelette")
	rec := NewReconciler(repo)

	initial := []dto.RecipeItemInput{
		{Name: "eggs"}, {Name: "milk"}, {Name: "butter"},
	}
	if err := rec.ReconcileIngredients(context.Background(), recipe, initial); err != nil {
		t.Fatalf("initial reconcile: %v", err)
	}

	reduced := []dto.RecipeItemInput{
		{Name: "eggs"}, {Name: "butter"},
	}
	if err := rec.ReconcileIngredients(context.Background(), recipe, reduced); err != nil {
		t.Fatalf("second reconcile: %v", err)
	}

	cons := associationsByName(t, repo, recipe.ID)
	if len(cons) != 2 {
		t.Fatalf("expected 2 associations, got %d", len(cons))
	}
	if _, ok := cons["milk"]; ok {
		t.Error("expected milk association to be removed")
	}

	// 共享目录条目不随关联删除
	if _, err := repo.GetItemByName(context.Background(), "milk"); err != nil {
		t.Errorf("expected milk to stay in the catalogue: %v", err)
	}
}

func TestReconcileIngredientsPartialUpdate(t *testing.T) {
	repo := newFakeRepo()
	recipe := seedRecipe(t, repo, "Omelette")
	rec := NewReconciler(repo)

	initial := []dto.RecipeItemInput{
		{Name: "milk", Description: strPtr("a splash"), Optional: boolPtr(true)},
	}
	if err := rec.ReconcileIngredients(context.Background(), recipe, initial); err != nil {
		t.Fatalf("initial reconcile: %v", err)
	}

	// 只携带描述，不携带 optional
	update := []dto.RecipeItemInput{
		{Name: "milk", Description: strPtr("100ml")},
	}
	if err := rec.ReconcileIngredients(context.Background(), recipe, update); err != nil {
		t.Fatalf("second reconcile: %v", err)
	}

	cons := associationsByName(t, repo, recipe.ID)
	milk := cons["milk"]
	if milk.Description != "100ml" {
		t.Errorf("expected description overwritten, got %q", milk.Description)
	}
	if !milk.Optional {
		t.Error("expected optional flag to survive a partial update")
	}
}

func TestReconcileIngredientsPaddedNamePartialUpdate(t *testing.T) {
	repo := newFakeRepo()
	recipe := seedRecipe(t, repo, "Omelette")
	rec := NewReconciler(repo)

	initial := []dto.RecipeItemInput{
		{Name: "egg", Description: strPtr("2 large"), Optional: boolPtr(true)},
	}
	if err := rec.ReconcileIngredients(context.Background(), recipe, initial); err != nil {
		t.Fatalf("initial reconcile: %v", err)
	}

	// 名称带空白：应命中已有关联，而不是删掉后重建
	update := []dto.RecipeItemInput{
		{Name: " egg ", Description: strPtr("3 large")},
	}
	if err := rec.ReconcileIngredients(context.Background(), recipe, update); err != nil {
		t.Fatalf("second reconcile: %v", err)
	}

	cons := associationsByName(t, repo, recipe.ID)
	if len(cons) != 1 {
		t.Fatalf("expected a single association, got %d", len(cons))
	}
	egg := cons["egg"]
	if egg.Description != "3 large" {
		t.Errorf("expected description overwritten, got %q", egg.Description)
	}
	if !egg.Optional {
		t.Error("expected optional flag to survive a padded-name update")
	}
	items, _ := repo.ListItems(context.Background())
	if len(items) != 1 {
		t.Errorf("expected a single catalogue item, got %d", len(items))
	}
}

func TestReconcileTagsPaddedNameKeepsAssociation(t *testing.T) {
	repo := newFakeRepo()
	recipe := seedRecipe(t, repo, "Omelette")
	rec := NewReconciler(repo)

	if err := rec.ReconcileTags(context.Background(), recipe, []string{"breakfast"}); err != nil {
		t.Fatalf("initial reconcile: %v", err)
	}
	if err := rec.ReconcileTags(context.Background(), recipe, []string{" breakfast "}); err != nil {
		t.Fatalf("second reconcile: %v", err)
	}

	names := tagNames(t, repo, recipe.ID)
	if _, ok := names["breakfast"]; !ok || len(names) != 1 {
		t.Errorf("expected the breakfast association to survive, got %v", names)
	}
	tags, _ := repo.ListTags(context.Background())
	if len(tags) != 1 {
		t.Errorf("expected a single tag defined, got %d", len(tags))
	}
}

func TestReconcileIngredientsDuplicateLastWins(t *testing.T) {
	repo := newFakeRepo()
	recipe := seedRecipe(t, repo, "Omelette")
	rec := NewReconciler(repo)

	desired := []dto.RecipeItemInput{
		{Name: "eggs", Description: strPtr("2")},
		{Name: "eggs", Description: strPtr("3"), Optional: boolPtr(true)},
	}
	if err := rec.ReconcileIngredients(context.Background(), recipe, desired); err != nil {
		t.Fatalf("reconcile: %v", err)
	}

	cons := associationsByName(t, repo, recipe.ID)
	if len(cons) != 1 {
		t.Fatalf("expected a single association for duplicated name, got %d", len(cons))
	}
	eggs := cons["eggs"]
	if eggs.Description != "3" || !eggs.Optional {
		t.Errorf("expected the later descriptor to win, got %+v", eggs)
	}
}

func TestReconcileTags(t *testing.T) {
	repo := newFakeRepo()
	recipe := seedRecipe(t, repo, "Omelette")
	rec := NewReconciler(repo)

	if err := rec.ReconcileTags(context.Background(), recipe, []string{"breakfast", "quick"}); err != nil {
		t.Fatalf("initial reconcile: %v", err)
	}
	names := tagNames(t, repo, recipe.ID)
	if len(names) != 2 {
		t.Fatalf("expected 2 tag associations, got %d", len(names))
	}

	// 换掉一个标签
	if err := rec.ReconcileTags(context.Background(), recipe, []string{"breakfast", "vegetarian"}); err != nil {
		t.Fatalf("second reconcile: %v", err)
	}
	names = tagNames(t, repo, recipe.ID)
	if _, ok := names["quick"]; ok {
		t.Error("expected quick association to be removed")
	}
	if _, ok := names["vegetarian"]; !ok {
		t.Error("expected vegetarian association to be created")
	}

	// quick 标签本身仍在
	if _, err := repo.GetTagByName(context.Background(), "quick"); err != nil {
		t.Errorf("expected quick to stay defined: %v", err)
	}

	// 清空
	if err := rec.ReconcileTags(context.Background(), recipe, []string{}); err != nil {
		t.Fatalf("clear reconcile: %v", err)
	}
	names = tagNames(t, repo, recipe.ID)
	if len(names) != 0 {
		t.Errorf("expected no tag associations, got %d", len(names))
	}
}

func TestReconcileTagsIdempotent(t *testing.T) {
	repo := newFakeRepo()
	recipe := seedRecipe(t, repo, "Omelette")
	rec := NewReconciler(repo)

	for i := 0; i < 3; i++ {
		if err := rec.ReconcileTags(context.Background(), recipe, []string{"breakfast", "breakfast", "quick"}); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}

	names := tagNames(t, repo, recipe.ID)
	if len(names) != 2 {
		t.Fatalf("expected 2 tag associations, got %d", len(names))
	}
	tags, _ := repo.ListTags(context.Background())
	if len(tags) != 2 {
		t.Errorf("expected 2 tags defined, got %d", len(tags))
	}
}

package assistant

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"jobscout/internal/models"
	"jobscout/internal/storage"
)

type fakeFetcher struct {
	err      error
	items    []map[string]any
	keywords []string
}

func (f *fakeFetcher) Fetch(_ context.Context, keyword string) ([]map[string]any, error) {
	f.keywords = append(f.keywords, keyword)

	return f.items, f.err
}

func listing(id, name string, salary any) map[string]any {
	return map[string]any{
		"id":            id,
		"name":          name,
		"alternate_url": "https://hh.ru/vacancy/" + id,
		"salary":        salary,
		"snippet": map[string]any{
			"requirement":    "Опыт с Python от 3 лет",
			"responsibility": "Разработка сервисов",
		},
	}
}

func newTestService(t *testing.T, fetcher Fetcher) (*Service, *storage.Store) {
	t.Helper()

	store, err := storage.NewStore("vacancies.json", storage.WithFileSystem(storage.NewMemFS()))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	svc, err := NewService(fetcher, store, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	return svc, store
}

func ids(vs []models.Vacancy) []string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		out = append(out, v.ID)
	}

	return out
}

func TestNewService_RequiresDeps(t *testing.T) {
	store, _ := storage.NewStore("v.json", storage.WithFileSystem(storage.NewMemFS()))

	if _, err := NewService(nil, store, nil); !errors.Is(err, ErrNoFetcher) {
		t.Errorf("NewService(nil fetcher) error = %v", err)
	}

	if _, err := NewService(&fakeFetcher{}, nil, nil); !errors.Is(err, ErrNoRepository) {
		t.Errorf("NewService(nil repo) error = %v", err)
	}
}

func TestService_Search_StoresNormalized(t *testing.T) {
	fetcher := &fakeFetcher{items: []map[string]any{
		listing("1", "Python Developer", map[string]any{"from": 100000, "to": 150000}),
		listing("2", "", nil),
		listing("3", "Go Developer", map[string]any{"from": 200000, "to": nil}),
	}}

	svc, store := newTestService(t, fetcher)

	n, err := svc.Search(context.Background(), "  Python ")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if n != 2 {
		t.Errorf("Search stored %d, want 2", n)
	}

	if !reflect.DeepEqual(fetcher.keywords, []string{"Python"}) {
		t.Errorf("fetcher got keywords %v", fetcher.keywords)
	}

	got := store.Load()
	if !reflect.DeepEqual(ids(got), []string{"1", "3"}) {
		t.Fatalf("stored ids = %v, want [1 3]", ids(got))
	}

	if got[0].Salary != models.RangeSalary(100000, 150000) || got[1].Salary != models.FixedSalary(200000) {
		t.Errorf("salaries = %v, %v", got[0].Salary, got[1].Salary)
	}
}

func TestService_Search_FetchError(t *testing.T) {
	boom := errors.New("boom")
	svc, store := newTestService(t, &fakeFetcher{err: boom})

	if _, err := svc.Search(context.Background(), "go"); !errors.Is(err, boom) {
		t.Errorf("Search error = %v, want %v", err, boom)
	}

	if len(store.Load()) != 0 {
		t.Error("nothing should be stored when the fetch fails")
	}
}

func TestService_Search_AppendsAcrossCalls(t *testing.T) {
	fetcher := &fakeFetcher{items: []map[string]any{listing("1", "A", 1000)}}
	svc, store := newTestService(t, fetcher)

	for i := 0; i < 2; i++ {
		if _, err := svc.Search(context.Background(), "a"); err != nil {
			t.Fatalf("Search: %v", err)
		}
	}

	if got := ids(store.Load()); !reflect.DeepEqual(got, []string{"1", "1"}) {
		t.Errorf("stored ids = %v, want [1 1]", got)
	}

	removed, err := svc.Dedup()
	if err != nil {
		t.Fatalf("Dedup: %v", err)
	}

	if removed != 1 || len(store.Load()) != 1 {
		t.Errorf("Dedup removed %d, left %d", removed, len(store.Load()))
	}
}

func TestService_Queries(t *testing.T) {
	fetcher := &fakeFetcher{items: []map[string]any{
		listing("1", "Junior", map[string]any{"from": 1000, "to": 2000}),
		listing("2", "Senior", 3000),
		listing("3", "Unknown", nil),
	}}

	svc, _ := newTestService(t, fetcher)
	if _, err := svc.Search(context.Background(), "python"); err != nil {
		t.Fatalf("Search: %v", err)
	}

	if got := ids(svc.List()); !reflect.DeepEqual(got, []string{"1", "2", "3"}) {
		t.Errorf("List() = %v", got)
	}

	if got := ids(svc.Top(2)); !reflect.DeepEqual(got, []string{"2", "1"}) {
		t.Errorf("Top(2) = %v, want [2 1]", got)
	}

	if got := ids(svc.FilterByKeyword("python")); len(got) != 3 {
		t.Errorf("FilterByKeyword(python) = %v, want all three", got)
	}

	if got := ids(svc.FilterBySalary(1500, 0)); !reflect.DeepEqual(got, []string{"2", "1"}) {
		t.Errorf("FilterBySalary(1500, 0) = %v, want [2 1]", got)
	}
}

func TestService_AddAndDelete(t *testing.T) {
	svc, store := newTestService(t, &fakeFetcher{})

	if err := svc.Add(models.Vacancy{ID: "9", Name: "Manual", URL: "https://example.com"}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	if err := svc.Add(models.Vacancy{ID: "10", URL: "https://example.com"}); !errors.Is(err, models.ErrInvalidVacancy) {
		t.Errorf("Add without name error = %v, want ErrInvalidVacancy", err)
	}

	if got := ids(store.Load()); !reflect.DeepEqual(got, []string{"9"}) {
		t.Fatalf("stored ids = %v, want [9]", got)
	}

	if err := svc.Delete(" "); !errors.Is(err, ErrEmptyID) {
		t.Errorf("Delete(blank) error = %v, want ErrEmptyID", err)
	}

	if err := svc.Delete("9"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if len(store.Load()) != 0 {
		t.Error("Delete should remove the vacancy")
	}
}

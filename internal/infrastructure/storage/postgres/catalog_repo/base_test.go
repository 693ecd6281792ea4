package catalog_repo

import (
	"testing"

	"github.com/Masterminds/squirrel"
)

func testRepo() *BaseCatalogRepo[any] {
	return NewBaseCatalogRepo[any](nil, "test_table", []string{"id", "name", "branch"}, func() any { return nil })
}

func TestParseOrderBy(t *testing.T) {
	repo := testRepo()

	tests := []struct {
		name    string
		orderBy string
		want    string
		wantErr bool
	}{
		{name: "empty defaults to name", orderBy: "", want: "name ASC"},
		{name: "bare column", orderBy: "branch", want: "branch ASC"},
		{name: "explicit direction", orderBy: "name DESC", want: "name DESC"},
		{name: "lowercase direction", orderBy: "name desc", want: "name DESC"},
		{name: "unknown column", orderBy: "password", wantErr: true},
		{name: "injection attempt", orderBy: "name; DROP TABLE test_table", wantErr: true},
		{name: "bad direction", orderBy: "name SIDEWAYS", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.parseOrderBy(tt.orderBy)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseOrderBy failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("order mismatch\nwant: %s\ngot:  %s", tt.want, got)
			}
		})
	}
}

func TestBaseSelect_Filters(t *testing.T) {
	repo := testRepo()

	q := repo.baseSelect().
		Where(squirrel.Eq{"deletion_mark": false}).
		Where(squirrel.Eq{"organization_id": "org-1"}).
		Where(squirrel.ILike{"name": "%copper%"})

	sql, args, err := q.ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	wantSQL := "SELECT id, name, branch FROM test_table WHERE deletion_mark = $1 AND organization_id = $2 AND name ILIKE $3"
	if sql != wantSQL {
		t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", wantSQL, sql)
	}
	if len(args) != 3 {
		t.Fatalf("args count mismatch: %d", len(args))
	}
	if args[2] != "%copper%" {
		t.Errorf("search arg mismatch: %v", args[2])
	}
}

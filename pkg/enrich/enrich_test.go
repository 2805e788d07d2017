package enrich_test

import (
	"context"
	"strings"
	"testing"

	kdb "github.com/nitikab23/autoai/pkg/db"
	"github.com/nitikab23/autoai/pkg/enrich"
	"github.com/nitikab23/autoai/pkg/utils/pointer"
)

func TestPrompt(t *testing.T) {

	t.Run("it renders the table, its size and its columns", func(t *testing.T) {
		metadata := kdb.TableMetadata{
			TableRef: kdb.TableRef{Catalog: "hive", Schema: "sales", Table: "orders"},
			RowCount: pointer.Ref(int64(120)),
			Columns: []kdb.Column{
				{Name: "order_id", Type: "bigint", Nullable: false},
				{
					Name: "status", Type: "varchar", Nullable: true,
					SampleValues: []string{"pending", "shipped"},
				},
			},
		}

		actual := enrich.Prompt(metadata)

		for _, fragment := range []string{
			"Table: hive.sales.orders",
			"Rows: 120",
			"- order_id (bigint)",
			"- status (varchar, nullable) e.g. pending, shipped",
		} {
			if !strings.Contains(actual, fragment) {
				t.Errorf("prompt misses %q:\n%s", fragment, actual)
			}
		}
	})

	t.Run("when the row count is unknown, it is left out", func(t *testing.T) {
		metadata := kdb.TableMetadata{
			TableRef: kdb.TableRef{Catalog: "hive", Schema: "sales", Table: "orders"},
			Columns:  []kdb.Column{{Name: "order_id", Type: "bigint"}},
		}

		actual := enrich.Prompt(metadata)
		if strings.Contains(actual, "Rows:") {
			t.Errorf("prompt should not mention rows:\n%s", actual)
		}
	})
}

func TestApply(t *testing.T) {

	given := kdb.TableMetadata{
		TableRef:    kdb.TableRef{Catalog: "hive", Schema: "sales", Table: "orders"},
		Description: "old table description",
		Columns: []kdb.Column{
			{Name: "order_id", Type: "bigint"},
			{Name: "status", Type: "varchar", Description: "old status description"},
		},
	}

	t.Run("it writes descriptions onto a copy", func(t *testing.T) {
		actual := enrich.Apply(given, "orders placed by customers", map[string]string{
			"order_id": "primary key of the order",
		})

		if actual.Description != "orders placed by customers" {
			t.Errorf("unmatch table description: %s", actual.Description)
		}
		if actual.Columns[0].Description != "primary key of the order" {
			t.Errorf("unmatch column description: %s", actual.Columns[0].Description)
		}
		if actual.Columns[1].Description != "old status description" {
			t.Errorf("an unmentioned column should keep its description: %s", actual.Columns[1].Description)
		}

		if given.Columns[0].Description != "" {
			t.Errorf("the input should not be mutated: %#v", given.Columns[0])
		}
	})

	t.Run("empty descriptions do not erase anything", func(t *testing.T) {
		actual := enrich.Apply(given, "", map[string]string{"status": ""})

		if actual.Description != "old table description" {
			t.Errorf("unmatch table description: %s", actual.Description)
		}
		if actual.Columns[1].Description != "old status description" {
			t.Errorf("unmatch column description: %s", actual.Columns[1].Description)
		}
	})
}

func TestNull(t *testing.T) {
	metadata := kdb.TableMetadata{
		TableRef:    kdb.TableRef{Catalog: "hive", Schema: "sales", Table: "orders"},
		Description: "as extracted",
	}

	actual, err := enrich.Null().Enrich(context.Background(), metadata)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if actual.Description != metadata.Description {
		t.Errorf("metadata should pass through untouched: %#v", actual)
	}
}

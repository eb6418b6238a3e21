package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const BillingUsageSchema = `
	CREATE TABLE IF NOT EXISTS billing_usage (
		id VARCHAR NOT NULL PRIMARY KEY,
		workspace_id VARCHAR NOT NULL,
		sku_name VARCHAR NOT NULL,
		cloud VARCHAR NOT NULL,
		usage_date TIMESTAMP NOT NULL,
		usage_unit VARCHAR NOT NULL,
		usage_quantity DOUBLE NOT NULL,
		unit_price DOUBLE NOT NULL,
		metadata JSON
	);
`

const applicationsSeq = `CREATE SEQUENCE IF NOT EXISTS applications_id_seq;`

const ApplicationsSchema = `
	CREATE TABLE IF NOT EXISTS applications (
		id BIGINT PRIMARY KEY DEFAULT nextval('applications_id_seq'),
		name VARCHAR NOT NULL,
		description VARCHAR,
		creator VARCHAR NOT NULL,
		workspace_id VARCHAR NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
`

const tagsSeq = `CREATE SEQUENCE IF NOT EXISTS tags_id_seq;`

const TagsSchema = `
	CREATE TABLE IF NOT EXISTS tags (
		id BIGINT PRIMARY KEY DEFAULT nextval('tags_id_seq'),
		name VARCHAR NOT NULL,
		description VARCHAR,
		color VARCHAR,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
`

// The composite primary key is what makes assign idempotent under races: two
// concurrent inserts of the same pair resolve to a single link.
const ApplicationTagsSchema = `
	CREATE TABLE IF NOT EXISTS application_tags (
		application_id BIGINT NOT NULL,
		tag_id BIGINT NOT NULL,
		assigned_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (application_id, tag_id)
	);
`

const recommendationsSeq = `CREATE SEQUENCE IF NOT EXISTS recommendations_id_seq;`

const RecommendationsSchema = `
	CREATE TABLE IF NOT EXISTS recommendations (
		id BIGINT PRIMARY KEY DEFAULT nextval('recommendations_id_seq'),
		title VARCHAR NOT NULL,
		description VARCHAR NOT NULL,
		potential_savings DOUBLE,
		priority VARCHAR NOT NULL,
		category VARCHAR NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
`

var bootQueries = []string{
	BillingUsageSchema,
	applicationsSeq,
	ApplicationsSchema,
	tagsSeq,
	TagsSchema,
	ApplicationTagsSchema,
	recommendationsSeq,
	RecommendationsSchema,
}

type Settings struct {
	DbPath string
}

func NewDB(settings Settings) (*sql.DB, error) {
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=4", settings.DbPath), func(exec driver.ExecerContext) error {
		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}

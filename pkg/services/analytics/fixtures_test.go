package analytics

import (
	"strconv"
	"time"

	"github.com/de-tools/cost-lens/pkg/models/domain"
	"github.com/shopspring/decimal"
)

func usageRec(id string, appID int64, workspaceID string, date time.Time, qty, price float64) domain.UsageRecord {
	metadata := map[string]string{}
	if appID > 0 {
		metadata["app_id"] = strconv.FormatInt(appID, 10)
	}
	return domain.UsageRecord{
		ID:            id,
		WorkspaceID:   workspaceID,
		SKUName:       "PREMIUM_JOBS_COMPUTE",
		Cloud:         "AWS",
		UsageDate:     date,
		UsageUnit:     "DBU",
		UsageQuantity: decimal.NewFromFloat(qty),
		UnitPrice:     decimal.NewFromFloat(price),
		Metadata:      metadata,
	}
}

func app(id int64, name, creator, workspaceID string) domain.Application {
	return domain.Application{
		ID:          id,
		Name:        name,
		Creator:     creator,
		WorkspaceID: workspaceID,
	}
}

func link(appID, tagID int64) domain.ApplicationTagLink {
	return domain.ApplicationTagLink{ApplicationID: appID, TagID: tagID}
}

// ytdFilter resolves a ytd window over 2024 as of May 15.
func ytdFilter() domain.ResolvedFilter {
	return domain.ResolvedFilter{
		Window: domain.Window{
			Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC),
		},
		NominalEnd: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func testSnapshot() *domain.Snapshot {
	return &domain.Snapshot{
		Records: []domain.UsageRecord{
			usageRec("r1", 1, "ws-1", time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), 10, 2),
			usageRec("r2", 2, "ws-1", time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC), 5, 4),
			usageRec("r3", 1, "ws-2", time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), 3, 2),
			usageRec("r4", 3, "ws-2", time.Date(2024, 4, 20, 0, 0, 0, 0, time.UTC), 1, 8),
		},
		Applications: []domain.Application{
			app(1, "ML Training Pipeline", "ml-team@company.com", "ws-1"),
			app(2, "Analytics Dashboard", "data-team@company.com", "ws-1"),
			app(3, "Legacy Processor", "data-team@company.com", "ws-2"),
		},
		Tags: []domain.Tag{
			{ID: 1, Name: "Production"},
			{ID: 2, Name: "Machine Learning"},
		},
		Links: []domain.ApplicationTagLink{
			link(1, 1),
			link(1, 2),
			link(2, 1),
		},
	}
}

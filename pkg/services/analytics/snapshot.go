package analytics

import (
	"strconv"

	"github.com/de-tools/cost-lens/pkg/models/domain"
)

// metadataAppKey is the usage metadata field carrying the owning application id.
const metadataAppKey = "app_id"

// usageRow is a usage record joined with the application it belongs to and that
// application's tag memberships. Records whose metadata does not resolve to a
// known application keep a nil app: they still count toward workspace-scoped
// totals but can never satisfy creator or tag constraints.
type usageRow struct {
	record domain.UsageRecord
	app    *domain.Application
	tagIDs []int64
}

type joinedSnapshot struct {
	rows     []usageRow
	apps     []domain.Application
	tagNames map[int64]string
	tagged   map[int64]struct{}
}

func joinSnapshot(snap *domain.Snapshot) *joinedSnapshot {
	appsByID := make(map[int64]*domain.Application, len(snap.Applications))
	apps := make([]domain.Application, len(snap.Applications))
	copy(apps, snap.Applications)
	for i := range apps {
		appsByID[apps[i].ID] = &apps[i]
	}

	tagsByApp := make(map[int64][]int64, len(snap.Links))
	tagged := make(map[int64]struct{}, len(snap.Links))
	for _, link := range snap.Links {
		tagsByApp[link.ApplicationID] = append(tagsByApp[link.ApplicationID], link.TagID)
		tagged[link.ApplicationID] = struct{}{}
	}

	tagNames := make(map[int64]string, len(snap.Tags))
	for _, tag := range snap.Tags {
		tagNames[tag.ID] = tag.Name
	}

	rows := make([]usageRow, 0, len(snap.Records))
	for _, rec := range snap.Records {
		row := usageRow{record: rec}
		if raw, ok := rec.Metadata[metadataAppKey]; ok {
			if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
				if app, ok := appsByID[id]; ok {
					row.app = app
					row.tagIDs = tagsByApp[id]
				}
			}
		}
		rows = append(rows, row)
	}

	return &joinedSnapshot{
		rows:     rows,
		apps:     apps,
		tagNames: tagNames,
		tagged:   tagged,
	}
}

// matches applies the resolved predicate to a joined row: usage_date within
// [start, end) plus the creator/tag/workspace constraints.
func (r usageRow) matches(rf domain.ResolvedFilter) bool {
	d := r.record.UsageDate
	if d.Before(rf.Window.Start) || !d.Before(rf.Window.End) {
		return false
	}
	if len(rf.WorkspaceIDs) > 0 && !containsString(rf.WorkspaceIDs, r.record.WorkspaceID) {
		return false
	}
	if rf.Creator != "" {
		if r.app == nil || r.app.Creator != rf.Creator {
			return false
		}
	}
	if len(rf.TagIDs) > 0 {
		if r.app == nil || len(intersectIDs(r.tagIDs, rf.TagIDs)) == 0 {
			return false
		}
	}
	return true
}

func containsString(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func intersectIDs(a, b []int64) []int64 {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	want := make(map[int64]struct{}, len(b))
	for _, id := range b {
		want[id] = struct{}{}
	}
	var out []int64
	for _, id := range a {
		if _, ok := want[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

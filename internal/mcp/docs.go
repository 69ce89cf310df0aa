package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `faultdesk tracks facility fault reports through a small lifecycle.

Core concepts:
- Fault: id, title, description, priority (low|medium|high|critical), location, reporter, optional assignee and photos.
- Status: pending -> in_progress -> completed. Re-opening a completed fault is allowed and clears completedAt.
- Ids are assigned by the server and never reused, even after delete_fault.

Default workflow:
1) Orient with summarize_faults, then query_faults (filter by status/priority/technician, sort by priority for triage).
2) Report with create_fault; start work with change_fault_status(status=in_progress, actor=<technician>).
3) Finish with change_fault_status(status=completed); record context with add_fault_note.
4) fault_history shows the timeline of any fault, including deleted ones.

Docs:
- faultdesk://docs/lifecycle (status rules, assignment rules, error codes)
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "faultdesk://docs/lifecycle",
		Name:        "docs_lifecycle",
		Title:       "Fault lifecycle",
		Description: "Status transitions, assignment rules, query semantics and error codes.",
		Content: `# Fault lifecycle

## Statuses

| From \ To   | pending | in_progress | completed |
|-------------|---------|-------------|-----------|
| pending     | yes     | yes         | yes       |
| in_progress | yes     | yes         | yes       |
| completed   | yes     | yes         | yes       |

- Entering ` + "`completed`" + ` sets ` + "`completedAt`" + `; leaving it clears ` + "`completedAt`" + `.
- Setting the current status again only refreshes ` + "`updatedAt`" + `.
- ` + "`cancelled`" + ` and unknown values fail with ` + "`INVALID_TRANSITION`" + `.

## Assignment

- ` + "`change_fault_status`" + ` with an ` + "`actor`" + ` assigns that actor when the fault is unassigned or when moving to ` + "`in_progress`" + `.
- ` + "`assign_fault`" + ` sets the assignee without touching the status; an empty actor unassigns.

## Queries

- ` + "`searchText`" + ` matches title, description, location and reporter, ignoring case.
- ` + "`priority`" + ` / ` + "`status`" + ` accept a value or ` + "`all`" + `.
- ` + "`sortBy`" + `: ` + "`createdAt`" + ` (newest first, default), ` + "`priority`" + ` (critical first, ties keep order), ` + "`title`" + ` (alphabetical for the configured locale).
- ` + "`summarize_faults`" + ` counts ` + "`critical`" + ` and ` + "`active`" + ` over unfinished faults only; ` + "`today`" + ` uses the server's configured time zone.

## Error codes

- ` + "`FAULT_NOT_FOUND`" + `: the id does not exist.
- ` + "`VALIDATION_FAILED`" + `: a field is missing or out of bounds; ` + "`details.field`" + ` names it.
- ` + "`INVALID_TRANSITION`" + `: the target status is not pending, in_progress or completed.
- ` + "`INVALID_QUERY`" + `: an unknown filter value or sort key.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}

package source

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"

	"github.com/zhubert/datagrid/internal/layout"
)

var (
	firstNames = []string{"Ada", "Grace", "Linus", "Margaret", "Ken", "Barbara", "Dennis", "Frances", "Edsger", "Radia"}
	lastNames  = []string{"Lovelace", "Hopper", "Torvalds", "Hamilton", "Thompson", "Liskov", "Ritchie", "Allen", "Dijkstra", "Perlman"}
	teams      = []string{"Platform", "Storage", "Networking", "Compilers", "Security"}
	statuses   = []string{"active", "on leave", "contractor"}
)

// DemoColumns describes the columns of the rows returned by Generate.
func DemoColumns() []layout.Descriptor {
	return []layout.Descriptor{
		{ID: "name", DisplayName: "Name", Size: 180, MinSize: 80, DisableHiding: true},
		{ID: "email", DisplayName: "Email", Size: 260},
		{ID: "team", DisplayName: "Team", Size: 140},
		{ID: "status", DisplayName: "Status", Size: 120},
		{ID: "age", DisplayName: "Age", Size: 70, MinSize: 50, MaxSize: 120},
		{ID: "id", DisplayName: "ID", Size: 360, DisableSorting: true},
	}
}

// Generate returns n deterministic demo employee records for seed.
func Generate(n int, seed int64) []Record {
	r := rand.New(rand.NewSource(seed))
	rows := make([]Record, n)
	for i := range rows {
		first := firstNames[r.Intn(len(firstNames))]
		last := lastNames[r.Intn(len(lastNames))]
		id, err := uuid.NewRandomFromReader(r)
		if err != nil {
			id = uuid.New()
		}
		rows[i] = Record{
			"id":     id.String(),
			"name":   first + " " + last,
			"email":  fmt.Sprintf("%s.%s%d@example.com", strings.ToLower(first), strings.ToLower(last), i),
			"team":   teams[r.Intn(len(teams))],
			"status": statuses[r.Intn(len(statuses))],
			"age":    22 + r.Intn(45),
		}
	}
	return rows
}

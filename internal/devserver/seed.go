package devserver

import (
	"fmt"

	"github.com/rshade/schoolconsole/internal/record"
)

// Resource names served by the seeded store.
const (
	ResourceStudents        = "students"
	ResourceUsers           = "users"
	ResourceEvents          = "events"
	ResourceBehaviorRecords = "behavior-records"
	ResourceCourses         = "courses"
)

// Fixture sizes. Students span several pages at the default page size.
const (
	seedActiveStudents   = 23
	seedInactiveStudents = 3
)

//nolint:gochecknoglobals // Read-only fixture tables.
var (
	firstNames = []string{
		"Ana", "Bruno", "Camila", "Diego", "Elena", "Felipe", "Gabriela", "Hugo",
		"Isabel", "Javier", "Karla", "Luis", "María", "Nicolás", "Olivia", "Pablo",
		"Quintín", "Rosa", "Sofía", "Tomás", "Úrsula", "Valentina", "Walter", "Ximena",
		"Yolanda", "Zoe",
	}
	lastNames = []string{
		"Gómez", "Díaz", "Rojas", "Pérez", "Castro", "Morales", "Vargas", "Silva",
		"Ramos", "Torres", "Flores", "Herrera", "Medina",
	}
	grades = []string{"5", "6", "7", "8"}
)

// Resources lists every resource the seeded store serves.
func Resources() []string {
	return []string{ResourceStudents, ResourceUsers, ResourceEvents, ResourceBehaviorRecords, ResourceCourses}
}

// NewSeededStore returns a store with fixtures for every resource.
func NewSeededStore() *Store {
	s := NewStore(Resources()...)
	Seed(s)
	return s
}

// Seed adds the fixture documents to s. Resources s does not serve are skipped.
func Seed(s *Store) {
	for resource, docs := range fixtures() {
		if !s.Has(resource) {
			continue
		}
		for _, doc := range docs {
			// Fixture ids are unique, so Create cannot fail for a served resource.
			_, _ = s.Create(resource, doc)
		}
	}
}

func fixtures() map[string][]Document {
	return map[string][]Document{
		ResourceStudents:        studentFixtures(),
		ResourceUsers:           userFixtures(),
		ResourceEvents:          eventFixtures(),
		ResourceBehaviorRecords: behaviorFixtures(),
		ResourceCourses:         courseFixtures(),
	}
}

func studentFixtures() []Document {
	total := seedActiveStudents + seedInactiveStudents
	docs := make([]Document, 0, total)
	for i := range total {
		first := firstNames[i%len(firstNames)]
		last := lastNames[i%len(lastNames)]
		status := record.StatusActive
		if i >= seedActiveStudents {
			status = record.StatusInactive
		}
		docs = append(docs, Document{
			"id":             fmt.Sprintf("stu-%03d", i+1),
			"firstName":      first,
			"lastName":       last,
			"email":          fmt.Sprintf("student%03d@school.test", i+1),
			"grade":          grades[i%len(grades)],
			"section":        string(rune('A' + i%3)),
			"guardianName":   "Guardian of " + first,
			"enrollmentDate": fmt.Sprintf("2024-03-%02d", i%28+1),
			"status":         string(status),
		})
	}
	return docs
}

func userFixtures() []Document {
	return []Document{
		{"id": "usr-001", "name": "Laura Méndez", "email": "laura@school.test", "role": "ADMIN", "status": "ACTIVE"},
		{"id": "usr-002", "name": "Carlos Ruiz", "email": "carlos@school.test", "role": "TEACHER", "status": "ACTIVE"},
		{"id": "usr-003", "name": "Patricia León", "email": "patricia@school.test", "role": "TEACHER", "status": "ACTIVE"},
		{"id": "usr-004", "name": "Andrés Soto", "email": "andres@school.test", "role": "COORDINATOR", "status": "ACTIVE"},
		{"id": "usr-005", "name": "Marta Núñez", "email": "marta@school.test", "role": "SECRETARY", "status": "ACTIVE"},
		{"id": "usr-006", "name": "Jorge Vidal", "email": "jorge@school.test", "role": "TEACHER", "status": "INACTIVE"},
	}
}

func eventFixtures() []Document {
	return []Document{
		{
			"id": "evt-001", "title": "Science fair", "description": "Annual science fair for grades 5 to 8.",
			"type": "ACADEMIC", "location": "Main hall", "startDate": "2026-05-12", "endDate": "2026-05-13", "status": "ACTIVE",
		},
		{
			"id": "evt-002", "title": "Inter-school football", "description": "Friendly tournament with neighbouring schools.",
			"type": "SPORTS", "location": "Field", "startDate": "2026-06-02", "endDate": "2026-06-02", "status": "ACTIVE",
		},
		{
			"id": "evt-003", "title": "Parents meeting", "description": "Term progress meeting with families.",
			"type": "MEETING", "location": "Room 12", "startDate": "2026-04-20", "endDate": "2026-04-20", "status": "ACTIVE",
		},
		{
			"id": "evt-004", "title": "Spring concert", "description": "Choir and orchestra spring performance.",
			"type": "CULTURAL", "location": "Auditorium", "startDate": "2026-03-21", "endDate": "2026-03-21", "status": "INACTIVE",
		},
	}
}

func behaviorFixtures() []Document {
	return []Document{
		{
			"id": "beh-001", "studentId": "stu-002", "studentName": "Bruno Díaz",
			"description": "Disrupted class repeatedly during the maths exam.", "severity": "MEDIUM",
			"date": "2026-02-10", "reportedBy": "Carlos Ruiz", "status": "ACTIVE",
		},
		{
			"id": "beh-002", "studentId": "stu-005", "studentName": "Elena Castro",
			"description": "Helped organise the library book drive.", "severity": "LOW",
			"date": "2026-02-14", "reportedBy": "Patricia León", "status": "ACTIVE",
		},
		{
			"id": "beh-003", "studentId": "stu-008", "studentName": "Hugo Silva",
			"description": "Physical altercation in the playground.", "severity": "HIGH",
			"date": "2026-03-01", "reportedBy": "Andrés Soto", "status": "INACTIVE",
		},
	}
}

func courseFixtures() []Document {
	return []Document{
		{"id": "crs-001", "name": "Mathematics", "code": "MAT-5", "level": "PRIMARY", "teacher": "Carlos Ruiz", "credits": 4, "status": "ACTIVE"},
		{"id": "crs-002", "name": "Natural Sciences", "code": "SCI-6", "level": "PRIMARY", "teacher": "Patricia León", "credits": 3, "status": "ACTIVE"},
		{"id": "crs-003", "name": "History", "code": "HIS-7", "level": "MIDDLE", "teacher": "Patricia León", "credits": 2, "status": "ACTIVE"},
		{"id": "crs-004", "name": "Physics", "code": "PHY-8", "level": "MIDDLE", "teacher": "Carlos Ruiz", "credits": 3, "status": "ACTIVE"},
		{"id": "crs-005", "name": "Latin", "code": "LAT-8", "level": "HIGH", "teacher": "Jorge Vidal", "credits": 1, "status": "INACTIVE"},
	}
}

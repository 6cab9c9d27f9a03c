// internal/app/bootstrap/seed.go
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	bylawsstore "github.com/dalemusser/govhub/internal/app/store/bylaws"
	groupstore "github.com/dalemusser/govhub/internal/app/store/groups"
	grouptypestore "github.com/dalemusser/govhub/internal/app/store/grouptypes"
	meetingstore "github.com/dalemusser/govhub/internal/app/store/meetings"
	minutesstore "github.com/dalemusser/govhub/internal/app/store/minutes"
	officestore "github.com/dalemusser/govhub/internal/app/store/offices"
	peoplestore "github.com/dalemusser/govhub/internal/app/store/people"
	"github.com/dalemusser/govhub/internal/app/store/storeerr"
	termstore "github.com/dalemusser/govhub/internal/app/store/terms"
	"github.com/dalemusser/govhub/internal/app/system/slugs"
	"github.com/dalemusser/govhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// seedFile is the YAML fixture format. Everything is referenced by slug.
//
//	group_types:
//	  - {title: Board, slug: board, order: 1}
//	people:
//	  - {first_name: Ann, last_name: Lee}
//	groups:
//	  - title: Governing Board
//	    type: board
//	    offices: [{title: President}]
//	    terms:
//	      - {person: ann-lee, office: president, start: 2023-01-01, end: 2024-12-31}
//	    meetings:
//	      - start: 2024-03-12T19:00:00Z
//	        minutes: {content: "<p>Called to order.</p>"}
//	bylaws:
//	  - {title: Constitution, status: A, content: "<p>...</p>"}
type seedFile struct {
	GroupTypes []seedGroupType `yaml:"group_types"`
	People     []seedPerson    `yaml:"people"`
	Groups     []seedGroup     `yaml:"groups"`
	Bylaws     []seedBylaws    `yaml:"bylaws"`
}

type seedGroupType struct {
	Title       string `yaml:"title"`
	Slug        string `yaml:"slug"`
	Description string `yaml:"description"`
	Order       int    `yaml:"order"`
}

type seedPerson struct {
	FirstName  string `yaml:"first_name"`
	MiddleName string `yaml:"middle_name"`
	LastName   string `yaml:"last_name"`
	Suffix     string `yaml:"suffix"`
	Slug       string `yaml:"slug"`
	Gender     string `yaml:"gender"`
	Member     *bool  `yaml:"member"` // default true
	Phone      string `yaml:"phone"`
	Email      string `yaml:"email"`
	Bio        string `yaml:"bio"`
}

type seedGroup struct {
	Title       string        `yaml:"title"`
	Slug        string        `yaml:"slug"`
	Type        string        `yaml:"type"`
	Description string        `yaml:"description"`
	Order       int           `yaml:"order"`
	Active      *bool         `yaml:"active"` // default true
	FormedOn    *time.Time    `yaml:"formed_on"`
	DisbandedOn *time.Time    `yaml:"disbanded_on"`
	AdHoc       bool          `yaml:"adhoc"`
	ExOfficio   bool          `yaml:"ex_officio"`
	Members     []string      `yaml:"members"`
	PastMembers []string      `yaml:"past_members"`
	Offices     []seedOffice  `yaml:"offices"`
	Terms       []seedTerm    `yaml:"terms"`
	Meetings    []seedMeeting `yaml:"meetings"`
}

type seedOffice struct {
	Title       string `yaml:"title"`
	Slug        string `yaml:"slug"`
	Description string `yaml:"description"`
	Order       int    `yaml:"order"`
	ExOfficio   bool   `yaml:"ex_officio"`
}

type seedTerm struct {
	Person    string     `yaml:"person"`
	Office    string     `yaml:"office"`
	Start     time.Time  `yaml:"start"`
	End       *time.Time `yaml:"end"`
	Alternate bool       `yaml:"alternate"`
}

type seedMeeting struct {
	Title           string       `yaml:"title"`
	Start           time.Time    `yaml:"start"`
	End             time.Time    `yaml:"end"`
	Agenda          string       `yaml:"agenda"`
	BusinessArising string       `yaml:"business_arising"`
	Minutes         *seedMinutes `yaml:"minutes"`
}

type seedMinutes struct {
	Content string   `yaml:"content"`
	Draft   bool     `yaml:"draft"`
	Present []string `yaml:"present"` // person slugs holding an active term of the group
	Others  []string `yaml:"others"`  // person slugs
}

type seedBylaws struct {
	Title   string `yaml:"title"`
	Slug    string `yaml:"slug"`
	Status  string `yaml:"status"`
	Content string `yaml:"content"`
}

// SeedResult counts what a seed run created.
type SeedResult struct {
	GroupTypes int
	People     int
	Groups     int
	Offices    int
	Terms      int
	Meetings   int
	Bylaws     int
}

// ErrSeedSlugRequired marks a seed entry that needs an explicit slug.
var ErrSeedSlugRequired = errors.New("slug required: title has no letters or digits to build one from")

// loadSeedFile reads and applies the fixture at path.
func loadSeedFile(ctx context.Context, db *mongo.Database, path string, logger *zap.Logger) (SeedResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return SeedResult{}, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	res, err := Seed(ctx, db, f, logger)
	if err != nil {
		return res, fmt.Errorf("seed %s: %w", path, err)
	}
	logger.Info("seed file loaded",
		zap.String("path", path),
		zap.Int("group_types", res.GroupTypes),
		zap.Int("people", res.People),
		zap.Int("groups", res.Groups),
		zap.Int("offices", res.Offices),
		zap.Int("terms", res.Terms),
		zap.Int("meetings", res.Meetings),
		zap.Int("bylaws", res.Bylaws))
	return res, nil
}

// Seed loads a YAML fixture through the stores. Entities whose slug is
// already taken are reused, not duplicated; terms and meetings are only
// added to groups created by this run, so loading the same file twice
// changes nothing. Entries whose title or name yields no slug must carry
// an explicit one.
func Seed(ctx context.Context, db *mongo.Database, r io.Reader, logger *zap.Logger) (SeedResult, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	var sf seedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&sf); err != nil && !errors.Is(err, io.EOF) {
		return SeedResult{}, fmt.Errorf("decode: %w", err)
	}

	s := seeder{
		types:    grouptypestore.New(db),
		people:   peoplestore.New(db),
		groups:   groupstore.New(db),
		offices:  officestore.New(db),
		terms:    termstore.New(db),
		meetings: meetingstore.New(db),
		minutes:  minutesstore.New(db),
		bylaws:   bylawsstore.New(db),
		typeIDs:  map[string]primitive.ObjectID{},
		personID: map[string]primitive.ObjectID{},
		seen:     map[string]bool{},
		log:      logger,
	}

	for _, in := range sf.GroupTypes {
		if err := s.groupType(ctx, in); err != nil {
			return s.res, err
		}
	}
	for _, in := range sf.People {
		if err := s.person(ctx, in); err != nil {
			return s.res, err
		}
	}
	for _, in := range sf.Groups {
		if err := s.group(ctx, in); err != nil {
			return s.res, err
		}
	}
	for _, in := range sf.Bylaws {
		if err := s.bylawsDoc(ctx, in); err != nil {
			return s.res, err
		}
	}
	return s.res, nil
}

type seeder struct {
	types    *grouptypestore.Store
	people   *peoplestore.Store
	groups   *groupstore.Store
	offices  *officestore.Store
	terms    *termstore.Store
	meetings *meetingstore.Store
	minutes  *minutesstore.Store
	bylaws   *bylawsstore.Store

	typeIDs  map[string]primitive.ObjectID
	personID map[string]primitive.ObjectID
	seen     map[string]bool // person slugs listed earlier in this file
	log      *zap.Logger
	res      SeedResult
}

// requireSlug rejects an entry whose slug would have to be generated at
// random, since later runs and references could not find it again.
func requireSlug(kind string, e models.Sluggable) error {
	src := e.SlugSource()
	if strings.TrimSpace(e.GetSlug()) != "" {
		src = e.GetSlug()
	}
	if slugs.Make(src) == "" {
		return fmt.Errorf("%s %q: %w", kind, strings.TrimSpace(e.SlugSource()), ErrSeedSlugRequired)
	}
	return nil
}

func (s *seeder) groupType(ctx context.Context, in seedGroupType) error {
	gt := models.GroupType{Title: in.Title, Slug: in.Slug, Description: in.Description, Order: in.Order}
	if err := requireSlug("group type", &gt); err != nil {
		return err
	}
	created, err := s.types.Create(ctx, gt)
	switch {
	case err == nil:
		s.res.GroupTypes++
	case errors.Is(err, storeerr.ErrDuplicateSlug):
		slugs.Fill(&gt)
		if created, err = s.types.GetBySlug(ctx, gt.Slug); err != nil {
			return err
		}
	default:
		return err
	}
	s.typeIDs[created.Slug] = created.ID
	return nil
}

func (s *seeder) person(ctx context.Context, in seedPerson) error {
	p := models.Person{
		FirstName:  in.FirstName,
		MiddleName: in.MiddleName,
		LastName:   in.LastName,
		Suffix:     in.Suffix,
		Slug:       in.Slug,
		Gender:     in.Gender,
		Member:     in.Member == nil || *in.Member,
		Phone:      in.Phone,
		Email:      in.Email,
		Bio:        in.Bio,
	}
	if err := requireSlug("person", &p); err != nil {
		return err
	}
	created, err := s.people.Create(ctx, p)
	switch {
	case err == nil:
		s.res.People++
	case errors.Is(err, storeerr.ErrDuplicateSlug):
		slugs.Fill(&p)
		if s.seen[p.Slug] {
			s.log.Warn("seed person shares a slug with an earlier entry; reusing it",
				zap.String("slug", p.Slug),
				zap.String("name", strings.TrimSpace(p.SlugSource())))
		}
		if created, err = s.people.GetBySlug(ctx, p.Slug); err != nil {
			return err
		}
	default:
		return err
	}
	s.seen[created.Slug] = true
	s.personID[created.Slug] = created.ID
	return nil
}

// personRef resolves a person slug from this file or the database.
func (s *seeder) personRef(ctx context.Context, slug string) (primitive.ObjectID, error) {
	slug = slugs.Make(slug)
	if id, ok := s.personID[slug]; ok {
		return id, nil
	}
	p, err := s.people.GetBySlug(ctx, slug)
	if err != nil {
		return primitive.NilObjectID, err
	}
	s.personID[slug] = p.ID
	return p.ID, nil
}

func (s *seeder) personRefs(ctx context.Context, slugList []string) ([]primitive.ObjectID, error) {
	out := make([]primitive.ObjectID, 0, len(slugList))
	for _, slug := range slugList {
		id, err := s.personRef(ctx, slug)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

func (s *seeder) group(ctx context.Context, in seedGroup) error {
	typeSlug := slugs.Make(in.Type)
	typeID, ok := s.typeIDs[typeSlug]
	if !ok {
		gt, err := s.types.GetBySlug(ctx, typeSlug)
		if err != nil {
			return fmt.Errorf("group %q: %w", in.Title, err)
		}
		typeID = gt.ID
		s.typeIDs[typeSlug] = typeID
	}

	members, err := s.personRefs(ctx, in.Members)
	if err != nil {
		return fmt.Errorf("group %q members: %w", in.Title, err)
	}
	past, err := s.personRefs(ctx, in.PastMembers)
	if err != nil {
		return fmt.Errorf("group %q past members: %w", in.Title, err)
	}

	g := models.Group{
		Title:         in.Title,
		Slug:          in.Slug,
		Description:   in.Description,
		Order:         in.Order,
		TypeID:        typeID,
		Active:        in.Active == nil || *in.Active,
		FormedOn:      dateOnly(in.FormedOn),
		DisbandedOn:   dateOnly(in.DisbandedOn),
		AdHoc:         in.AdHoc,
		ExOfficio:     in.ExOfficio,
		MemberIDs:     members,
		PastMemberIDs: past,
	}
	if err := requireSlug("group", &g); err != nil {
		return err
	}
	created, err := s.groups.Create(ctx, g)
	if errors.Is(err, storeerr.ErrDuplicateSlug) {
		// Already seeded; its offices, terms and meetings were loaded then.
		return nil
	}
	if err != nil {
		return err
	}
	s.res.Groups++

	officeIDs := map[string]primitive.ObjectID{}
	for _, so := range in.Offices {
		office := models.Office{
			GroupID:     created.ID,
			Title:       so.Title,
			Slug:        so.Slug,
			Description: so.Description,
			Order:       so.Order,
			ExOfficio:   so.ExOfficio,
		}
		if err := requireSlug("office", &office); err != nil {
			return fmt.Errorf("group %q: %w", in.Title, err)
		}
		o, err := s.offices.Create(ctx, office)
		if err != nil {
			return fmt.Errorf("group %q office %q: %w", in.Title, so.Title, err)
		}
		officeIDs[o.Slug] = o.ID
		s.res.Offices++
	}

	// Attendance refers to term holders by person slug.
	termByPerson := map[primitive.ObjectID]primitive.ObjectID{}
	for _, st := range in.Terms {
		personID, err := s.personRef(ctx, st.Person)
		if err != nil {
			return fmt.Errorf("group %q term: %w", in.Title, err)
		}
		t := models.Term{
			GroupID:   created.ID,
			PersonID:  personID,
			Start:     st.Start,
			End:       st.End,
			Alternate: st.Alternate,
		}
		if st.Office != "" {
			id, ok := officeIDs[slugs.Make(st.Office)]
			if !ok {
				return fmt.Errorf("group %q term: unknown office %q", in.Title, st.Office)
			}
			t.OfficeID = &id
		}
		ct, err := s.terms.Create(ctx, t)
		if err != nil {
			return fmt.Errorf("group %q term: %w", in.Title, err)
		}
		termByPerson[personID] = ct.ID
		s.res.Terms++
	}

	for _, sm := range in.Meetings {
		title := sm.Title
		if title == "" {
			title = created.Title + " meeting"
		}
		m, err := s.meetings.Create(ctx, models.Meeting{
			GroupID:         created.ID,
			Event:           models.Event{Title: title, Start: sm.Start, End: sm.End},
			Agenda:          sm.Agenda,
			BusinessArising: sm.BusinessArising,
		})
		if err != nil {
			return fmt.Errorf("group %q meeting: %w", in.Title, err)
		}
		s.res.Meetings++
		if sm.Minutes == nil {
			continue
		}

		mins := minutesstore.NewDraft(m.ID)
		mins.Content = sm.Minutes.Content
		mins.Draft = sm.Minutes.Draft
		for _, slug := range sm.Minutes.Present {
			personID, err := s.personRef(ctx, slug)
			if err != nil {
				return fmt.Errorf("group %q minutes: %w", in.Title, err)
			}
			termID, ok := termByPerson[personID]
			if !ok {
				return fmt.Errorf("group %q minutes: %s holds no term", in.Title, slug)
			}
			mins.MembersPresent = append(mins.MembersPresent, termID)
		}
		if mins.OthersPresent, err = s.personRefs(ctx, sm.Minutes.Others); err != nil {
			return fmt.Errorf("group %q minutes: %w", in.Title, err)
		}
		if _, err := s.minutes.Save(ctx, mins); err != nil {
			return fmt.Errorf("group %q minutes: %w", in.Title, err)
		}
	}
	return nil
}

func (s *seeder) bylawsDoc(ctx context.Context, in seedBylaws) error {
	b := models.Bylaws{Title: in.Title, Slug: in.Slug, Status: in.Status, Content: in.Content}
	if err := requireSlug("bylaws", &b); err != nil {
		return err
	}
	slugs.Fill(&b)
	if _, err := s.bylaws.GetBySlug(ctx, b.Slug); err == nil {
		return nil
	} else if !storeerr.IsNotFound(err) {
		return err
	}
	if _, err := s.bylaws.Save(ctx, b); err != nil {
		return fmt.Errorf("bylaws %q: %w", in.Title, err)
	}
	s.res.Bylaws++
	return nil
}

func dateOnly(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := models.Dateline(*t)
	return &d
}

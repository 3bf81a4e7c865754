package service

import (
	"strings"

	"github.com/dnk-music/intake/cmd/intake/models"
)

// Role buckets on the docs sheet. Performers are matched for role resolution
// but carry no identity block of their own.
const (
	roleMusicAuthors       = "music_authors"
	roleLyricists          = "lyricists"
	rolePhonogramProducers = "phonogram_producers"
	rolePerformers         = "performers"

	bucketDomestic = "domestic"
	bucketForeign  = "foreign"
)

const (
	domesticSlots        = 3
	foreignSlots         = 3
	producerForeignSlots = 2
)

// SlotBucket is a fixed-capacity author slot array filled in insertion order.
// The capacity is a constraint of the destination template.
type SlotBucket struct {
	role     string
	name     string
	capacity int
	Slots    []models.Author
}

func newSlotBucket(role, name string, capacity int) SlotBucket {
	return SlotBucket{role: role, name: name, capacity: capacity}
}

// Add places the author into the first empty slot
func (b *SlotBucket) Add(a models.Author) error {
	if len(b.Slots) >= b.capacity {
		return &models.CapacityError{
			Role:     b.role,
			Bucket:   b.name,
			Author:   a.FullName,
			Capacity: b.capacity,
		}
	}
	b.Slots = append(b.Slots, a)
	return nil
}

// RoleSlots holds the classified authors of one royalty role
type RoleSlots struct {
	Role     string
	Domestic SlotBucket
	Foreign  SlotBucket
	Scans    []models.Author
}

func newRoleSlots(role string, foreignCap int) RoleSlots {
	return RoleSlots{
		Role:     role,
		Domestic: newSlotBucket(role, bucketDomestic, domesticSlots),
		Foreign:  newSlotBucket(role, bucketForeign, foreignCap),
	}
}

func (s *RoleSlots) add(a models.Author) error {
	if a.ScanOnly() {
		s.Scans = append(s.Scans, a)
		return nil
	}
	if a.Docs.PassportType.Domestic() {
		return s.Domestic.Add(a)
	}
	return s.Foreign.Add(a)
}

// Classification is the docs-sheet author layout: identity data slotted per
// role, split by domestic/foreign passport type
type Classification struct {
	MusicAuthors       RoleSlots
	Lyricists          RoleSlots
	PhonogramProducers RoleSlots
}

// nameSet is a role's declared full names, exact-string matched
type nameSet map[string]struct{}

func (s nameSet) contains(name string) bool {
	_, ok := s[name]
	return ok
}

func (s nameSet) add(list string) {
	for _, name := range splitNames(list) {
		s[name] = struct{}{}
	}
}

// splitNames splits a comma-separated full-name list. Matching stays exact
// beyond the split itself, so this is the single place to change if
// normalized matching is ever wanted.
func splitNames(list string) []string {
	var out []string
	for _, part := range strings.Split(list, ",") {
		if name := strings.TrimSpace(part); name != "" {
			out = append(out, name)
		}
	}
	return out
}

// roleNames collects the per-role name sets declared across the request's
// tracks, or on the clip payload for clip releases
func roleNames(req *models.ReleaseRequest) map[string]nameSet {
	sets := map[string]nameSet{
		rolePerformers:         {},
		roleMusicAuthors:       {},
		roleLyricists:          {},
		rolePhonogramProducers: {},
	}

	if clip, ok := req.Data.(*models.ClipRelease); ok {
		sets[rolePerformers].add(clip.PerformersNames)
		sets[roleMusicAuthors].add(clip.MusicAuthorsNames)
		sets[roleLyricists].add(clip.LyricistsNames)
		sets[rolePhonogramProducers].add(clip.PhonogramProducersNames)
		return sets
	}

	for _, track := range req.Tracks() {
		sets[rolePerformers].add(track.PerformersNames)
		sets[roleMusicAuthors].add(track.MusicAuthorsNames)
		sets[roleLyricists].add(track.LyricistsNames)
		sets[rolePhonogramProducers].add(track.PhonogramProducersNames)
	}
	return sets
}

// Classify slots every declared author into the role buckets of each role
// whose name list contains the author's full name. The submitter signs the
// release through the signer blocks of the docs row: listed in a role-name
// list without a matching author record, they occupy no author slot, and as
// a declared author matching no list they never fail role resolution. Any
// other author matching no role aborts classification.
func Classify(req *models.ReleaseRequest) (*Classification, error) {
	sets := roleNames(req)
	submitter := req.UserData.FullName()

	c := &Classification{
		MusicAuthors:       newRoleSlots(roleMusicAuthors, foreignSlots),
		Lyricists:          newRoleSlots(roleLyricists, foreignSlots),
		PhonogramProducers: newRoleSlots(rolePhonogramProducers, producerForeignSlots),
	}

	for _, author := range req.Authors {
		matched := false

		if sets[roleMusicAuthors].contains(author.FullName) {
			matched = true
			if err := c.MusicAuthors.add(author); err != nil {
				return nil, err
			}
		}
		if sets[roleLyricists].contains(author.FullName) {
			matched = true
			if err := c.Lyricists.add(author); err != nil {
				return nil, err
			}
		}
		if sets[rolePhonogramProducers].contains(author.FullName) {
			matched = true
			if err := c.PhonogramProducers.add(author); err != nil {
				return nil, err
			}
		}
		if sets[rolePerformers].contains(author.FullName) {
			matched = true
		}
		if author.FullName == submitter {
			matched = true
		}

		if !matched {
			return nil, &models.RoleResolutionError{Author: author.FullName}
		}
	}

	return c, nil
}

package model_test

import (
	"testing"
	"time"

	model "github.com/mergington/activities/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestActivity(t *testing.T) {
	Convey("Given an Activity struct", t, func() {
		activity := model.Activity{
			Name:            "Chess Club",
			Description:     "Learn strategies and compete in chess tournaments",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 12,
			Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
		}

		Convey("When checking roster membership", func() {
			Convey("Then it should find signed-up students", func() {
				So(activity.HasParticipant("michael@mergington.edu"), ShouldBeTrue)
				So(activity.HasParticipant("daniel@mergington.edu"), ShouldBeTrue)
			})

			Convey("And it should not find other students", func() {
				So(activity.HasParticipant("emma@mergington.edu"), ShouldBeFalse)
				So(activity.HasParticipant(""), ShouldBeFalse)
			})

			Convey("And membership should be case sensitive", func() {
				So(activity.HasParticipant("Michael@mergington.edu"), ShouldBeFalse)
			})
		})

		Convey("When computing spots left", func() {
			Convey("Then it should subtract the roster size from capacity", func() {
				So(activity.SpotsLeft(), ShouldEqual, 10)
			})

			Convey("And it should go negative past capacity", func() {
				full := model.Activity{
					MaxParticipants: 1,
					Participants:    []string{"a@mergington.edu", "b@mergington.edu"},
				}
				So(full.SpotsLeft(), ShouldEqual, -1)
			})
		})

		Convey("When cloning", func() {
			clone := activity.Clone()

			Convey("Then the clone should carry the same values", func() {
				So(clone.Name, ShouldEqual, activity.Name)
				So(clone.Description, ShouldEqual, activity.Description)
				So(clone.Schedule, ShouldEqual, activity.Schedule)
				So(clone.MaxParticipants, ShouldEqual, activity.MaxParticipants)
				So(clone.Participants, ShouldResemble, activity.Participants)
			})

			Convey("And mutating the clone should not touch the original", func() {
				clone.Participants[0] = "someone@mergington.edu"
				clone.Participants = append(clone.Participants, "extra@mergington.edu")

				So(activity.Participants[0], ShouldEqual, "michael@mergington.edu")
				So(len(activity.Participants), ShouldEqual, 2)
			})

			Convey("And cloning an empty roster should yield an empty slice", func() {
				empty := model.Activity{Name: "New Club"}
				emptyClone := empty.Clone()

				So(emptyClone.Participants, ShouldNotBeNil)
				So(len(emptyClone.Participants), ShouldEqual, 0)
			})
		})
	})
}

func TestRosterChange(t *testing.T) {
	Convey("Given a RosterChange struct", t, func() {
		Convey("When recording a signup", func() {
			now := time.Now()
			change := model.RosterChange{
				ID:       "change-123",
				Action:   model.ActionSignup,
				Activity: "Basketball",
				Email:    "alex@mergington.edu",
				At:       now,
			}

			Convey("Then it should have the correct values", func() {
				So(change.ID, ShouldEqual, "change-123")
				So(change.Action, ShouldEqual, "signup")
				So(change.Activity, ShouldEqual, "Basketball")
				So(change.Email, ShouldEqual, "alex@mergington.edu")
				So(change.At, ShouldEqual, now)
			})
		})

		Convey("When comparing action constants", func() {
			Convey("Then they should be distinct", func() {
				So(model.ActionSignup, ShouldNotEqual, model.ActionUnregister)
				So(model.ActionUnregister, ShouldEqual, "unregister")
			})
		})
	})
}

func TestDefaultCatalog(t *testing.T) {
	Convey("Given the default catalog", t, func() {
		catalog := model.DefaultCatalog()

		Convey("Then it should contain nine activities", func() {
			So(len(catalog), ShouldEqual, 9)
		})

		Convey("Then every activity should be fully described", func() {
			for _, a := range catalog {
				So(a.Name, ShouldNotBeEmpty)
				So(a.Description, ShouldNotBeEmpty)
				So(a.Schedule, ShouldNotBeEmpty)
				So(a.MaxParticipants, ShouldBeGreaterThan, 0)
				So(a.Participants, ShouldNotBeNil)
			}
		})

		Convey("Then activity names should be unique", func() {
			seen := make(map[string]bool)
			for _, a := range catalog {
				So(seen[a.Name], ShouldBeFalse)
				seen[a.Name] = true
			}
		})

		Convey("Then seeded rosters should match the semester start", func() {
			byName := make(map[string]model.Activity)
			for _, a := range catalog {
				byName[a.Name] = a
			}

			So(byName["Basketball"].Participants, ShouldResemble, []string{"alex@mergington.edu"})
			So(byName["Basketball"].MaxParticipants, ShouldEqual, 15)
			So(byName["Tennis Club"].Participants, ShouldResemble, []string{"jordan@mergington.edu"})
			So(byName["Drama Club"].Participants, ShouldResemble,
				[]string{"lucas@mergington.edu", "ava@mergington.edu"})
			So(byName["Chess Club"].Participants, ShouldResemble,
				[]string{"michael@mergington.edu", "daniel@mergington.edu"})
		})

		Convey("Then no seeded student should appear twice in one roster", func() {
			for _, a := range catalog {
				seen := make(map[string]bool)
				for _, p := range a.Participants {
					So(seen[p], ShouldBeFalse)
					seen[p] = true
				}
			}
		})

		Convey("Then each call should return an independent copy", func() {
			other := model.DefaultCatalog()
			other[0].Participants[0] = "mutated@mergington.edu"

			So(catalog[0].Participants[0], ShouldNotEqual, "mutated@mergington.edu")
		})
	})
}

package roster_test

import (
	"errors"
	"testing"

	"github.com/mergington/activities/internal/domain/roster"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRoster(t *testing.T) {
	Convey("Given an empty roster", t, func() {
		r := roster.New(3)

		Convey("When adding a new email", func() {
			err := r.Add("a@mergington.edu")

			Convey("Then it should be recorded", func() {
				So(err, ShouldBeNil)
				So(r.Contains("a@mergington.edu"), ShouldBeTrue)
				So(r.Len(), ShouldEqual, 1)
			})
		})

		Convey("When adding the same email twice", func() {
			So(r.Add("a@mergington.edu"), ShouldBeNil)
			err := r.Add("a@mergington.edu")

			Convey("Then the second add should be rejected", func() {
				So(errors.Is(err, roster.ErrAlreadyRegistered), ShouldBeTrue)
				So(r.Len(), ShouldEqual, 1)
			})
		})

		Convey("When adding several emails", func() {
			for _, e := range []string{"c@x", "a@x", "b@x"} {
				So(r.Add(e), ShouldBeNil)
			}

			Convey("Then signup order should be preserved", func() {
				So(r.Emails(), ShouldResemble, []string{"c@x", "a@x", "b@x"})
			})

			Convey("And removing from the middle keeps the rest in order", func() {
				So(r.Remove("a@x"), ShouldBeNil)
				So(r.Emails(), ShouldResemble, []string{"c@x", "b@x"})
				So(r.Contains("a@x"), ShouldBeFalse)
			})
		})

		Convey("When removing an email that is not present", func() {
			err := r.Remove("ghost@x")

			Convey("Then it should report not registered", func() {
				So(errors.Is(err, roster.ErrNotRegistered), ShouldBeTrue)
			})
		})

		Convey("When the roster has no participants", func() {
			Convey("Then Emails should be an empty, non-nil slice", func() {
				So(r.Emails(), ShouldNotBeNil)
				So(r.Emails(), ShouldBeEmpty)
			})
		})

		Convey("When mutating the slice returned by Emails", func() {
			So(r.Add("a@x"), ShouldBeNil)
			out := r.Emails()
			out[0] = "tampered"

			Convey("Then the roster should be unaffected", func() {
				So(r.Emails(), ShouldResemble, []string{"a@x"})
			})
		})
	})
}

func TestRosterCapacity(t *testing.T) {
	Convey("Given a roster with capacity 2", t, func() {
		Convey("When capacity is advisory", func() {
			r := roster.New(2)
			So(r.Add("a@x"), ShouldBeNil)
			So(r.Add("b@x"), ShouldBeNil)

			Convey("Then it should accept signups past capacity", func() {
				So(r.Add("c@x"), ShouldBeNil)
				So(r.Len(), ShouldEqual, 3)
				So(r.Capacity(), ShouldEqual, 2)
			})
		})

		Convey("When capacity is enforced", func() {
			r := roster.New(2, roster.WithCapacityEnforced(true))
			So(r.Add("a@x"), ShouldBeNil)
			So(r.Add("b@x"), ShouldBeNil)

			Convey("Then a third signup should fail with ErrFull", func() {
				So(errors.Is(r.Add("c@x"), roster.ErrFull), ShouldBeTrue)
				So(r.Len(), ShouldEqual, 2)
			})

			Convey("And a duplicate is reported before fullness", func() {
				So(errors.Is(r.Add("a@x"), roster.ErrAlreadyRegistered), ShouldBeTrue)
			})

			Convey("And a freed seat can be taken again", func() {
				So(r.Remove("a@x"), ShouldBeNil)
				So(r.Add("c@x"), ShouldBeNil)
				So(r.Emails(), ShouldResemble, []string{"b@x", "c@x"})
			})
		})
	})
}

func TestFromEmails(t *testing.T) {
	Convey("Given seed emails", t, func() {
		Convey("When they are unique", func() {
			r, err := roster.FromEmails(1, []string{"a@x", "b@x"}, roster.WithCapacityEnforced(true))

			Convey("Then the roster should hold them in order even past capacity", func() {
				So(err, ShouldBeNil)
				So(r.Emails(), ShouldResemble, []string{"a@x", "b@x"})
			})
		})

		Convey("When they contain a duplicate", func() {
			r, err := roster.FromEmails(5, []string{"a@x", "a@x"})

			Convey("Then it should fail", func() {
				So(errors.Is(err, roster.ErrAlreadyRegistered), ShouldBeTrue)
				So(r, ShouldBeNil)
			})
		})
	})
}

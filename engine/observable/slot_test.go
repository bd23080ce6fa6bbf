package observable

import (
	"testing"

	. "github.com/onsi/gomega"
)

func TestSlotSetNotifiesOnChangeOnly(t *testing.T) {
	g := NewWithT(t)

	s := NewSlot(1)
	var got []int
	s.Subscribe(func(v int) { got = append(got, v) })

	g.Expect(s.Set(1)).To(BeFalse())
	g.Expect(s.Set(2)).To(BeTrue())
	g.Expect(s.Set(2)).To(BeFalse())
	g.Expect(s.Set(3)).To(BeTrue())

	g.Expect(got).To(Equal([]int{2, 3}))
	g.Expect(s.Get()).To(Equal(3))
}

func TestSlotUnsubscribe(t *testing.T) {
	g := NewWithT(t)

	s := NewSlot("a")
	calls := 0
	sub := s.Subscribe(func(string) { calls++ })

	s.Set("b")
	sub.Unsubscribe()
	sub.Unsubscribe()
	s.Set("c")

	g.Expect(calls).To(Equal(1))
}

func TestSlotChangesKeepsLatest(t *testing.T) {
	g := NewWithT(t)

	s := NewSlot(0)
	s.Set(1)
	s.Set(2)
	s.Set(3)

	g.Expect(s.Changes()).To(Receive(Equal(3)))
	g.Expect(s.Changes()).NotTo(Receive())
}

func TestSlotSubscriberMayReadSlot(t *testing.T) {
	g := NewWithT(t)

	s := NewSlot(0)
	var seen int
	s.Subscribe(func(int) { seen = s.Get() })

	s.Set(7)

	g.Expect(seen).To(Equal(7))
}

func TestZeroSubscriptionIsSafe(t *testing.T) {
	var sub Subscription
	sub.Unsubscribe()

	s := NewSlot(0)
	s.Subscribe(nil).Unsubscribe()
}

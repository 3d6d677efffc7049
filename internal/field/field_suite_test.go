package field

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestField(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Field Suite")
}

var _ = Describe("a generated field", func() {
	var (
		st    *State
		start time.Time
	)

	BeforeEach(func() {
		start = time.Unix(50, 0)
		gen, err := NewGenerator(DefaultParams(), rand.NewPCG(3, 9))
		Expect(err).NotTo(HaveOccurred())
		st = gen.Generate(start)
	})

	It("holds the configured population inside the world", func() {
		Expect(st.Len()).To(Equal(DefaultBodies))
		for _, b := range st.Bodies() {
			Expect(b.Position.X).To(BeNumerically(">=", 0))
			Expect(b.Position.X).To(BeNumerically("<=", DefaultWidth))
			Expect(b.Position.Y).To(BeNumerically(">=", 0))
			Expect(b.Position.Y).To(BeNumerically("<=", DefaultHeight))
		}
	})

	It("gives every body a finite positive radius", func() {
		for _, b := range st.Bodies() {
			Expect(b.Radius).To(BeNumerically(">", 0))
			Expect(math.IsInf(b.Radius, 0)).To(BeFalse())
			Expect(b.Radius).To(BeNumerically("<=", 400/DefaultMinRawR))
			Expect(b.Radius).To(BeNumerically(">=", 400/DefaultMaxRawR))
		}
	})

	Context("when advanced frame by frame", func() {
		const frames = 600
		frame := time.Second / 60

		It("keeps every body within one radius of the world", func() {
			now := start
			w := st.World()
			for i := 0; i < frames; i++ {
				now = now.Add(frame)
				st.Advance(now)
				for _, b := range st.Bodies() {
					Expect(b.Position.X).To(BeNumerically(">=", -b.Radius))
					Expect(b.Position.X).To(BeNumerically("<=", w.Width+b.Radius))
					Expect(b.Position.Y).To(BeNumerically(">=", -b.Radius))
					Expect(b.Position.Y).To(BeNumerically("<=", w.Height+b.Radius))
				}
			}
			Expect(st.LastUpdate()).To(Equal(now))
		})

		It("never changes velocity or radius", func() {
			before := st.Bodies()
			now := start
			for i := 0; i < frames; i++ {
				now = now.Add(frame)
				st.Advance(now)
			}
			after := st.Bodies()
			for i := range before {
				Expect(after[i].Velocity).To(Equal(before[i].Velocity))
				Expect(after[i].Radius).To(Equal(before[i].Radius))
			}
		})

		It("does not move anything when the clock goes backwards", func() {
			st.Advance(start.Add(time.Second))
			before := st.Bodies()
			st.Advance(start)
			Expect(st.Bodies()).To(Equal(before))
			Expect(st.LastUpdate()).To(Equal(start))
		})
	})
})

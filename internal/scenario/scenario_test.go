package scenario_test

import (
	"context"
	"math"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gravwords/internal/config"
	"github.com/san-kum/gravwords/internal/render"
	"github.com/san-kum/gravwords/internal/scenario"
)

const throwYAML = `
name: throw
profile: classic
seed: 1
duration: 1.25s
surface: {width: 1280, height: 720}
words: [sql, java, go]
events:
  - {at: 1.2s, kind: up}
  - {at: 1s, kind: down, target: sql}
  - {at: 1.1s, kind: move, x: 640, y: 360}
  - {at: 1.12s, kind: move, x: 660, y: 360}
  - {at: 1.14s, kind: move, x: 680, y: 360}
`

func mustParse(src string) *scenario.Scenario {
	sc, err := scenario.Parse([]byte(src))
	Expect(err).NotTo(HaveOccurred())
	return sc
}

func final(res *scenario.Result, text string) scenario.LabelState {
	for _, l := range res.Final {
		if l.Text == text {
			return l
		}
	}
	Fail("label " + text + " not in result")
	return scenario.LabelState{}
}

var _ = Describe("Parse", func() {
	It("fills defaults and orders events by time", func() {
		sc := mustParse(throwYAML)
		Expect(sc.FPS).To(Equal(60))
		Expect(sc.Events).To(HaveLen(5))
		Expect(sc.Events[0].Kind).To(Equal(scenario.KindDown))
		Expect(sc.Events[4].Kind).To(Equal(scenario.KindUp))
		Expect(sc.Events[1].At).To(Equal(1100 * time.Millisecond))
	})

	It("defaults the profile to classic", func() {
		sc := mustParse("duration: 1s\nsurface: {width: 10, height: 10}\n")
		Expect(sc.Profile).To(Equal("classic"))
	})

	DescribeTable("rejects malformed scenarios",
		func(src string, want error) {
			_, err := scenario.Parse([]byte(src))
			Expect(err).To(MatchError(want))
		},
		Entry("no duration", "surface: {width: 10, height: 10}\n", scenario.ErrNoDuration),
		Entry("zero fps", "duration: 1s\nfps: -1\nsurface: {width: 10, height: 10}\n", scenario.ErrBadFPS),
		Entry("no surface", "duration: 1s\n", scenario.ErrBadSurface),
		Entry("unknown kind", "duration: 1s\nsurface: {width: 10, height: 10}\nevents: [{at: 0s, kind: wiggle}]\n", scenario.ErrUnknownKind),
		Entry("resize without size", "duration: 1s\nsurface: {width: 10, height: 10}\nevents: [{at: 0s, kind: resize}]\n", scenario.ErrBadSurface),
		Entry("event after the end", "duration: 1s\nsurface: {width: 10, height: 10}\nevents: [{at: 2s, kind: up}]\n", scenario.ErrEventTime),
	)

	It("round-trips through a file", func() {
		path := filepath.Join(GinkgoT().TempDir(), "throw.yaml")
		Expect(scenario.Save(path, mustParse(throwYAML))).To(Succeed())
		sc, err := scenario.Load(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(sc.Events).To(HaveLen(5))
		Expect(sc.Duration).To(Equal(1250 * time.Millisecond))
	})
})

var _ = Describe("Run", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	It("drags the target label and throws it with damped velocity", func() {
		res, err := scenario.Run(ctx, mustParse(throwYAML))
		Expect(err).NotTo(HaveOccurred())

		var dragged []string
		for _, f := range res.Frames {
			if f.Dragging {
				dragged = append(dragged, f.DragLabel)
			}
		}
		Expect(dragged).NotTo(BeEmpty())
		Expect(dragged).To(HaveEach(Equal("sql")))
		Expect(res.Frames[len(res.Frames)-1].Dragging).To(BeFalse())

		sql := final(res, "sql")
		// last sample is 20px over 20ms, clamped to 900 and damped by 0.1
		Expect(sql.Velocity.X).To(BeNumerically(">", 60))
		Expect(sql.Velocity.Len()).To(BeNumerically("<=", 90))
		Expect(sql.Position.X).To(BeNumerically(">", 680))
	})

	It("is deterministic for a seed", func() {
		a, err := scenario.Run(ctx, mustParse(throwYAML))
		Expect(err).NotTo(HaveOccurred())
		b, err := scenario.Run(ctx, mustParse(throwYAML))
		Expect(err).NotTo(HaveOccurred())
		Expect(a.Frames).To(Equal(b.Frames))
	})

	It("keeps idle motion off while hidden", func() {
		sc := mustParse(`
duration: 3s
surface: {width: 1280, height: 720}
events:
  - {at: 0s, kind: hidden}
`)
		res, err := scenario.Run(ctx, sc)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Metrics["ambient_ticks"]).To(BeZero())
	})

	It("resumes idle motion when the region comes back", func() {
		sc := mustParse(`
duration: 3s
surface: {width: 1280, height: 720}
events:
  - {at: 0s, kind: hidden}
  - {at: 1.5s, kind: visible}
  - {at: 1.6s, kind: visible}
`)
		res, err := scenario.Run(ctx, sc)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Metrics["ambient_ticks"]).To(Equal(1.0))
	})

	It("rebuilds boundaries on resize without losing labels", func() {
		sc := mustParse(`
duration: 2s
surface: {width: 1280, height: 720}
events:
  - {at: 0.5s, kind: resize, width: 900, height: 500}
`)
		res, err := scenario.Run(ctx, sc)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Final).To(HaveLen(len(config.DefaultWords)))
		for _, l := range res.Final {
			Expect(l.Position.IsFinite()).To(BeTrue(), l.Text)
			Expect(math.IsNaN(l.Angle)).To(BeFalse(), l.Text)
		}
	})

	It("draws every frame onto a surface", func() {
		var rec render.Recorder
		sc := mustParse("duration: 0.5s\nsurface: {width: 800, height: 600}\nwords: [a, b]\n")
		res, err := scenario.Run(ctx, sc, scenario.WithSurface(&rec))
		Expect(err).NotTo(HaveOccurred())
		Expect(rec.Frames).To(Equal(len(res.Frames)))
		Expect(rec.Draws).To(HaveLen(2))
	})

	It("reports series for plotting", func() {
		res, err := scenario.Run(ctx, mustParse(throwYAML))
		Expect(err).NotTo(HaveOccurred())
		s, err := res.Series("dragging")
		Expect(err).NotTo(HaveOccurred())
		Expect(s).To(ContainElement(1.0))
		_, err = res.Series("entropy")
		Expect(err).To(HaveOccurred())
	})

	It("fails on an unknown target", func() {
		sc := mustParse("duration: 1s\nsurface: {width: 800, height: 600}\nevents: [{at: 0s, kind: down, target: cobol}]\n")
		_, err := scenario.Run(ctx, sc)
		Expect(err).To(MatchError(scenario.ErrUnknownTarget))
	})

	It("fails on an unknown profile", func() {
		sc := mustParse("profile: wild\nduration: 1s\nsurface: {width: 800, height: 600}\n")
		_, err := scenario.Run(ctx, sc)
		Expect(err).To(MatchError(config.ErrUnknownPreset))
	})

	It("stops when the context is cancelled", func() {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := scenario.Run(cctx, mustParse(throwYAML))
		Expect(err).To(MatchError(context.Canceled))
	})

	It("honours an explicit config", func() {
		cfg := config.GetPreset("calm")
		cfg.Interaction.AmbientInterval = 100 * time.Millisecond
		sc := mustParse("duration: 1s\nsurface: {width: 800, height: 600}\n")
		res, err := scenario.Run(ctx, sc, scenario.WithConfig(cfg))
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Profile).To(Equal("calm"))
		Expect(res.Metrics["ambient_ticks"]).To(BeNumerically(">=", 9))
	})
})

// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package bench

import (
	"context"

	"github.com/db47h/doorsim/door"
	"github.com/db47h/doorsim/internal/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/pkg/errors"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var _ = Describe("Run", func() {
	var (
		mockCtrl *gomock.Controller
		obs      *MockObserver
		script   *Script
		logs     *observer.ObservedLogs
		ctx      context.Context
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		obs = NewMockObserver(mockCtrl)

		var err error
		script, err = Load("testdata/scenario.yaml")
		Expect(err).ToNot(HaveOccurred())

		var core zapcore.Core
		core, logs = observer.New(zapcore.DebugLevel)
		ctx = logger.ToContext(context.Background(), zap.New(core).Sugar())
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should report every transition of the model", func() {
		gomock.InOrder(
			obs.EXPECT().Transition(uint64(5), door.Open, door.Closed),
			obs.EXPECT().Transition(uint64(7), door.Closed, door.Locked),
			obs.EXPECT().Transition(uint64(9), door.Locked, door.Error),
		)

		r, err := Run(ctx, script, WithObserver(obs))

		Expect(err).ToNot(HaveOccurred())
		Expect(r.ID.IsNil()).To(BeFalse())
		Expect(r.Engine).To(Equal(EngineModel))
		Expect(r.Final).To(Equal(door.Error))
		Expect(r.Samples).To(HaveLen(10))
		Expect(r.Samples[9].Tick).To(Equal(uint64(10)))
		Expect(r.Samples[9].Outputs).To(Equal(door.Outputs{Indicator: 0b111, StateCode: 0b11}))
		Expect(r.Samples[0].Inputs).To(Equal(door.Inputs{}))
		Expect(r.Samples[2].Inputs).To(Equal(door.Inputs{ResetN: true, Command: door.CmdClose}))
	})

	It("should trail the model by one tick on the circuit", func() {
		gomock.InOrder(
			obs.EXPECT().Transition(uint64(6), door.Open, door.Closed),
			obs.EXPECT().Transition(uint64(8), door.Closed, door.Locked),
			obs.EXPECT().Transition(uint64(10), door.Locked, door.Error),
		)

		r, err := Run(ctx, script, WithObserver(obs), WithEngine(EngineCircuit))

		Expect(err).ToNot(HaveOccurred())
		Expect(r.Engine).To(Equal(EngineCircuit))
		Expect(r.Final).To(Equal(door.Error))
		Expect(r.Samples[9].Outputs).To(Equal(door.Outputs{Indicator: 0b111, StateCode: 0b11}))
		Expect(r.Samples[4].State).To(Equal(door.Open))
		Expect(r.Samples[5].State).To(Equal(door.Closed))
	})

	It("should miss a transition on the final tick of the circuit", func() {
		tight, err := Parse([]byte("expect: closed\nsteps:\n  - reset: true\n    ticks: 2\n  - commands: [close]\n    ticks: 2\n  - ticks: 1\n"))
		Expect(err).ToNot(HaveOccurred())

		r, err := Run(ctx, tight)
		Expect(err).ToNot(HaveOccurred())
		Expect(r.Final).To(Equal(door.Closed))

		r, err = Run(ctx, tight, WithEngine(EngineCircuit))
		Expect(errors.Cause(err)).To(Equal(ErrMismatch))
		Expect(r.Final).To(Equal(door.Open))

		tight.Steps = append(tight.Steps, Step{Ticks: 1})
		r, err = Run(ctx, tight, WithEngine(EngineCircuit))
		Expect(err).ToNot(HaveOccurred())
		Expect(r.Final).To(Equal(door.Closed))
	})

	It("should tag log entries with the run id", func() {
		r, err := Run(ctx, script)
		Expect(err).ToNot(HaveOccurred())

		started := logs.FilterMessage("run started").All()
		Expect(started).To(HaveLen(1))
		Expect(started[0].LoggerName).To(Equal("bench"))
		Expect(started[0].ContextMap()).To(HaveKeyWithValue("run", r.ID.String()))
		Expect(logs.FilterMessage("state transition").Len()).To(Equal(3))
	})

	It("should report a final state mismatch", func() {
		script.Expect = "closed"

		r, err := Run(ctx, script)

		Expect(err).To(HaveOccurred())
		Expect(errors.Cause(err)).To(Equal(ErrMismatch))
		Expect(r).ToNot(BeNil())
		Expect(r.Final).To(Equal(door.Error))
		Expect(logs.FilterMessage("unexpected final state").Len()).To(Equal(1))
	})

	It("should stop on a cancelled context", func() {
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := Run(cctx, script, WithObserver(obs))

		Expect(errors.Cause(err)).To(Equal(context.Canceled))
	})

	It("should reject an unknown engine", func() {
		_, err := Run(ctx, script, WithEngine("fpga"))
		Expect(err).To(MatchError(`unknown engine "fpga"`))
	})
})

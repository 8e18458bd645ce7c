package internal_test

import (
	"context"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/worktrack/backend/internal"
)

func TestInternal(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Internal Suite")
}

var _ = Describe("WithTimeout", func() {
	It("should apply the requested deadline", func() {
		ctx, cancel := internal.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		deadline, ok := ctx.Deadline()
		Expect(ok).To(BeTrue())
		Expect(time.Until(deadline)).To(BeNumerically("~", 2*time.Second, 100*time.Millisecond))
	})

	It("should fall back to five seconds for non-positive durations", func() {
		ctx, cancel := internal.WithTimeout(context.Background(), 0)
		defer cancel()

		deadline, ok := ctx.Deadline()
		Expect(ok).To(BeTrue())
		Expect(time.Until(deadline)).To(BeNumerically("~", 5*time.Second, 100*time.Millisecond))
	})
})

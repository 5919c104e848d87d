package shor_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestShorPipeline(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Shor Pipeline Suite")
}

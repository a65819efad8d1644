package ginkgoui_test

import (
	"github.com/kcsujeet/bdd-lazy-var-next/framework/matchers"
	"github.com/kcsujeet/bdd-lazy-var-next/lazyvar"
	"github.com/kcsujeet/bdd-lazy-var-next/lazyvar/ginkgoui"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var ui = ginkgoui.MustNew(ginkgoui.Config{})

type object struct {
	name string
}

func init() {
	ui.Def("rootVar", func() any { return "world" })
}

var _ = ui.It("evaluates variables defined at the root", func() {
	Expect(ui.Get("rootVar")).To(Equal("world"))
})

var _ = ui.Describe("lazy variables", func() {
	var calls int

	ui.Def("counter", func() any {
		calls++
		return calls
	})
	ui.Def("fullName", func() any { return ui.Get("firstName").(string) + " " + ui.Get("lastName").(string) })
	ui.Def("firstName", "John")
	ui.Def("lastName", "Doe")

	BeforeEach(func() {
		calls = 0
	})

	ui.It("does not evaluate a variable that was not accessed", func() {
		Expect(calls).To(Equal(0))
	})

	ui.It("evaluates a variable once per spec", func() {
		Expect(ui.Get("counter")).To(Equal(1))
		Expect(ui.Get("counter")).To(Equal(1))
		Expect(calls).To(Equal(1))
	})

	ui.It("returns nil for a name without a definition", func() {
		Expect(ui.Get("notDefined")).To(BeNil())
	})

	ui.Context("when a dependency is redefined", func() {
		ui.Def("lastName", "Smith")

		ui.It("uses it inside the parent definition", func() {
			Expect(ui.Get("fullName")).To(Equal("John Smith"))
		})
	})

	ui.When("a definition refers to its own name", func() {
		ui.Def("lastName", func() any { return ui.Get("lastName").(string) + "-Smith" })

		ui.It("gets the parent definition", func() {
			Expect(ui.Get("fullName")).To(Equal("John Doe-Smith"))
		})
	})

	ui.XDescribe("skipped", func() {
		ui.Def("skippedVar", 1)

		ui.It("never runs", func() {
			Fail("pending specs do not run")
		})
	})
})

var _ = ui.Describe("values between specs", func() {
	var index int
	var seen []any

	ui.Def("value", func() any {
		index++
		return index
	})

	AfterEach(func() {
		seen = append(seen, ui.Get("value"))
	})

	ui.It("gets a fresh value", func() {
		value := ui.Get("value")
		Expect(value).To(Equal(index))
	})

	ui.It("gets another fresh value", func() {
		value := ui.Get("value")
		Expect(value).To(Equal(index))
		Expect(seen).To(HaveLen(1))
		Expect(seen[0]).NotTo(Equal(index))
	})
})

var _ = ui.Describe("AfterEach of a parent suite", func() {
	var subjectInChild any

	ui.Subject(func() any { return &object{} })

	ui.Describe("parent suite", func() {
		AfterEach(func() {
			Expect(ui.Subject()).To(BeIdenticalTo(subjectInChild))
		})

		ui.Describe("child suite", func() {
			ui.It("uses the same variable instance", func() {
				subjectInChild = ui.Subject()
			})
		})
	})
})

var _ = ui.Describe("BeforeEach of a parent suite", func() {
	var calls int
	var seenInBeforeEach any

	ui.Def("where", "outer")
	ui.Def("evaluations", func() any {
		calls++
		return calls
	})

	BeforeEach(func() {
		calls = 0
		seenInBeforeEach = ui.Get("where")
		ui.Get("evaluations")
	})

	ui.Describe("child suite", func() {
		ui.Def("where", "inner")

		ui.It("sees the child definition", func() {
			Expect(seenInBeforeEach).To(Equal("inner"))
		})

		ui.It("reuses the value evaluated in BeforeEach", func() {
			value := ui.Get("evaluations")
			Expect(value).To(Equal(1))
			Expect(calls).To(Equal(1))
		})
	})
})

var _ = ui.Describe("containers created in a loop", func() {
	for _, name := range []string{"first", "second"} {
		name := name
		ui.Context(name, func() {
			ui.Def("name", name)

			ui.It("gets the definition of its own container", func() {
				Expect(ui.Get("name")).To(Equal(name))
			})
		})
	}
})

var _ = ui.Describe("named subject", func() {
	value := &object{name: "named"}

	ui.Subject("named", value)

	ui.It("is accessible as subject and by name", func() {
		Expect(ui.Subject()).To(BeIdenticalTo(value))
		Expect(ui.Get("named")).To(BeIdenticalTo(value))
	})

	ui.Describe("nested named subject referring to subject", func() {
		ui.Subject("nested", func() any { return ui.Get("subject") })

		ui.It("gets the parent subject", func() {
			Expect(ui.Get("nested")).To(BeIdenticalTo(value))
		})
	})
})

var _ = ui.Describe("expectations", func() {
	ui.Subject(map[string]interface{}{
		"name":  "John",
		"items": []interface{}{1, 2, 3},
	})

	ui.It("", lazyvar.IsExpected(matchers.Not(matchers.BeNil())))
	ui.Its("name", matchers.Equal("John"))
	ui.Its("items", lazyvar.IsExpected(matchers.HaveLen(3)))
	ui.XIts("missing", matchers.Equal("never checked"))

	ui.It("accepts a GinkgoT body", func(t GinkgoTInterface) {
		matchers.AssertThat(t, ui.Get("its:name"), matchers.Equal("John"))
	})
})

var _ = ui.Describe("shared examples", func() {
	ui.SharedExamplesFor("a named thing", func(args ...any) {
		ui.It("has the expected name", func() {
			Expect(ui.Subject().(*object).name).To(Equal(args[0]))
		})
	})

	ui.Context("with a cart", func() {
		ui.Subject(&object{name: "cart"})
		ui.ItBehavesLike("a named thing", "cart")
	})

	ui.Context("with a user", func() {
		ui.Subject(&object{name: "user"})
		ui.IncludeExamplesFor("a named thing", "user")
	})
})

var _ = ui.Describe("shared examples in another suite tree", func() {
	var includeErr error

	func() {
		defer func() {
			if r := recover(); r != nil {
				includeErr, _ = r.(error)
			}
		}()
		ui.IncludeExamplesFor("a named thing")
	}()

	ui.It("cannot be included", func() {
		Expect(includeErr).To(MatchError(lazyvar.ErrUndefinedSharedBehavior))
	})
})

var _ = Describe("Must", func() {
	It("returns the value of a variable", func() {
		Expect(ui.Must("rootVar")).To(Equal("world"))
	})
})

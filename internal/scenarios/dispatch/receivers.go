package dispatch

// plain has a single concrete method; calls are statically bound.
type plain struct{}

func (plain) RestByTwo(i int) int { return i % 2 }

// restByTwoer is the interface the Virtual strategy calls through.
type restByTwoer interface {
	RestByTwo(i int) int
}

// virtualTarget is assigned at package level so the compiler cannot prove
// the dynamic type at the call site and devirtualize it.
var virtualTarget restByTwoer = &plain{}

// abstractBase declares RestByTwo without implementing it; concrete types
// embed it and provide the body.
type abstractBase struct {
	restByTwoer
}

// sealed embeds the abstract base and overrides RestByTwo. Calls through a
// *sealed resolve to the override statically.
type sealed struct {
	abstractBase
}

func (*sealed) RestByTwo(i int) int { return i % 2 }

// unsealed delegates to an overridable hook, so every call goes through a
// function value.
type unsealed struct {
	restByTwo func(i int) int
}

func newUnsealed() *unsealed {
	return &unsealed{restByTwo: func(i int) int { return i % 2 }}
}

func (u *unsealed) RestByTwo(i int) int { return u.restByTwo(i) }

// standalone has no base and no hook; its pointer method is bound statically.
type standalone struct{}

func (*standalone) RestByTwo(i int) int { return i % 2 }

var (
	plainTarget      plain
	sealedTarget     = &sealed{}
	unsealedTarget   = newUnsealed()
	standaloneTarget = &standalone{}
)

func sumPlain(n int) int {
	sum := 0
	for i := 0; i < n; i++ {
		sum += plainTarget.RestByTwo(i)
	}
	return sum
}

func sumVirtual(n int) int {
	sum := 0
	for i := 0; i < n; i++ {
		sum += virtualTarget.RestByTwo(i)
	}
	return sum
}

func sumSealed(n int) int {
	sum := 0
	for i := 0; i < n; i++ {
		sum += sealedTarget.RestByTwo(i)
	}
	return sum
}

func sumUnsealed(n int) int {
	sum := 0
	for i := 0; i < n; i++ {
		sum += unsealedTarget.RestByTwo(i)
	}
	return sum
}

func sumStandalone(n int) int {
	sum := 0
	for i := 0; i < n; i++ {
		sum += standaloneTarget.RestByTwo(i)
	}
	return sum
}

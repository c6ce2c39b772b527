package modes

import "github.com/reusee/dscope"

// ModuleForTest switches providers to development behavior, such as
// skipping the configured proxy.
type ModuleForTest struct {
	dscope.Module
}

func ForTest() ModuleForTest {
	return ModuleForTest{}
}

func (ModuleForTest) Mode() Mode {
	return ModeDevelopment
}

package classfile

// ModuleVisitor visits a Java module declaration (JVMS 4.7.25). Its methods
// must be called in the order: [VisitMainClass], (VisitPackage |
// VisitRequire | VisitExport | VisitOpen | VisitUse | VisitProvide)*,
// VisitEnd.
type ModuleVisitor interface {
	VisitMainClass(mainClass string)
	VisitPackage(packageName string)
	VisitRequire(module string, access int, version string)
	VisitExport(packageName string, access int, modules ...string)
	VisitOpen(packageName string, access int, modules ...string)
	VisitUse(service string)
	VisitProvide(service string, providers ...string)
	VisitEnd()
}

package classfile

// readModule decodes a Module attribute body (JVMS 4.7.25) starting at
// moduleOffset (the module_name_index field) and replays it against a
// ModuleVisitor obtained from visitor.VisitModule, then folds in the
// sibling ModulePackages and ModuleMainClass attributes if present.
func (c *ClassReader) readModule(visitor ClassVisitor, ctx *Context, moduleOffset, modulePackagesOffset int, moduleMainClass string) error {
	charBuffer := ctx.charBuffer
	offset := moduleOffset
	moduleName := c.readModuleName(offset, charBuffer)
	moduleFlags := c.readUnsignedShort(offset + 2)
	moduleVersion := c.readUTF8(offset+4, charBuffer)
	offset += 6

	mv := visitor.VisitModule(moduleName, moduleFlags, moduleVersion)
	if mv == nil {
		return nil
	}

	if moduleMainClass != "" {
		mv.VisitMainClass(moduleMainClass)
	}
	if modulePackagesOffset != 0 {
		packageCount := c.readUnsignedShort(modulePackagesOffset)
		packageOffset := modulePackagesOffset + 2
		for i := 0; i < packageCount; i++ {
			mv.VisitPackage(c.readPackage(packageOffset, charBuffer))
			packageOffset += 2
		}
	}

	requiresCount := c.readUnsignedShort(offset)
	offset += 2
	for i := 0; i < requiresCount; i++ {
		requires := c.readModuleName(offset, charBuffer)
		requiresFlags := c.readUnsignedShort(offset + 2)
		requiresVersion := c.readUTF8(offset+4, charBuffer)
		offset += 6
		mv.VisitRequire(requires, requiresFlags, requiresVersion)
	}

	exportsCount := c.readUnsignedShort(offset)
	offset += 2
	for i := 0; i < exportsCount; i++ {
		exports := c.readPackage(offset, charBuffer)
		exportsFlags := c.readUnsignedShort(offset + 2)
		exportsToCount := c.readUnsignedShort(offset + 4)
		offset += 6
		var exportsTo []string
		if exportsToCount != 0 {
			exportsTo = make([]string, exportsToCount)
			for j := 0; j < exportsToCount; j++ {
				exportsTo[j] = c.readModuleName(offset, charBuffer)
				offset += 2
			}
		}
		mv.VisitExport(exports, exportsFlags, exportsTo...)
	}

	opensCount := c.readUnsignedShort(offset)
	offset += 2
	for i := 0; i < opensCount; i++ {
		opens := c.readPackage(offset, charBuffer)
		opensFlags := c.readUnsignedShort(offset + 2)
		opensToCount := c.readUnsignedShort(offset + 4)
		offset += 6
		var opensTo []string
		if opensToCount != 0 {
			opensTo = make([]string, opensToCount)
			for j := 0; j < opensToCount; j++ {
				opensTo[j] = c.readModuleName(offset, charBuffer)
				offset += 2
			}
		}
		mv.VisitOpen(opens, opensFlags, opensTo...)
	}

	usesCount := c.readUnsignedShort(offset)
	offset += 2
	for i := 0; i < usesCount; i++ {
		mv.VisitUse(c.readClass(offset, charBuffer))
		offset += 2
	}

	providesCount := c.readUnsignedShort(offset)
	offset += 2
	for i := 0; i < providesCount; i++ {
		service := c.readClass(offset, charBuffer)
		providesWithCount := c.readUnsignedShort(offset + 2)
		offset += 4
		providers := make([]string, providesWithCount)
		for j := 0; j < providesWithCount; j++ {
			providers[j] = c.readClass(offset, charBuffer)
			offset += 2
		}
		mv.VisitProvide(service, providers...)
	}

	mv.VisitEnd()
	return nil
}

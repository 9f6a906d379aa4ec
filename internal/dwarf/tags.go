package dwarf

// Tag classifies a DW_TAG value. The source defines a capability trait
// that supplies tag/at/form lookups to several structs by inheritance;
// the abstract requirement is just "three fixed pure functions of an
// integer", so here they are ordinary package functions.
type Tag int

// Tag values, DWARF 2-4.
const (
	TagUnknown Tag = iota
	TagArrayType
	TagClassType
	TagEntryPoint
	TagEnumerationType
	TagFormalParameter
	TagImportedDeclaration
	TagLabel
	TagLexicalBlock
	TagMember
	TagPointerType
	TagReferenceType
	TagCompileUnit
	TagStringType
	TagStructureType
	TagSubroutineType
	TagTypedef
	TagUnionType
	TagUnspecifiedParameters
	TagVariant
	TagCommonBlock
	TagCommonInclusion
	TagInheritance
	TagInlinedSubroutine
	TagModule
	TagPtrToMemberType
	TagSetType
	TagSubrangeType
	TagWithStmt
	TagAccessDeclaration
	TagBaseType
	TagCatchBlock
	TagConstType
	TagConstant
	TagEnumerator
	TagFileType
	TagFriend
	TagNamelist
	TagNamelistItem
	TagPackedType
	TagSubprogram
	TagTemplateTypeParameter
	TagTemplateValueParameter
	TagThrownType
	TagTryBlock
	TagVariantPart
	TagVariable
	TagVolatileType
	TagDwarfProcedure
	TagRestrictType
	TagInterfaceType
	TagNamespace
	TagImportedModule
	TagUnspecifiedType
	TagPartialUnit
	TagImportedUnit
	TagCondition
	TagSharedType
	TagTypeUnit
	TagRvalueReferenceType
	TagTemplateAlias
	TagLoUser
	TagHiUser
)

// ClassifyTag maps a raw ULEB128-decoded tag value to a Tag.
func ClassifyTag(v uint64) Tag {
	switch v {
	case 0x1:
		return TagArrayType
	case 0x2:
		return TagClassType
	case 0x3:
		return TagEntryPoint
	case 0x4:
		return TagEnumerationType
	case 0x5:
		return TagFormalParameter
	case 0x8:
		return TagImportedDeclaration
	case 0xA:
		return TagLabel
	case 0xB:
		return TagLexicalBlock
	case 0xD:
		return TagMember
	case 0xF:
		return TagPointerType
	case 0x10:
		return TagReferenceType
	case 0x11:
		return TagCompileUnit
	case 0x12:
		return TagStringType
	case 0x13:
		return TagStructureType
	case 0x15:
		return TagSubroutineType
	case 0x16:
		return TagTypedef
	case 0x17:
		return TagUnionType
	case 0x18:
		return TagUnspecifiedParameters
	case 0x19:
		return TagVariant
	case 0x1A:
		return TagCommonBlock
	case 0x1B:
		return TagCommonInclusion
	case 0x1C:
		return TagInheritance
	case 0x1D:
		return TagInlinedSubroutine
	case 0x1E:
		return TagModule
	case 0x1F:
		return TagPtrToMemberType
	case 0x20:
		return TagSetType
	case 0x21:
		return TagSubrangeType
	case 0x22:
		return TagWithStmt
	case 0x23:
		return TagAccessDeclaration
	case 0x24:
		return TagBaseType
	case 0x25:
		return TagCatchBlock
	case 0x26:
		return TagConstType
	case 0x27:
		return TagConstant
	case 0x28:
		return TagEnumerator
	case 0x29:
		return TagFileType
	case 0x2A:
		return TagFriend
	case 0x2B:
		return TagNamelist
	case 0x2C:
		return TagNamelistItem
	case 0x2D:
		return TagPackedType
	case 0x2E:
		return TagSubprogram
	case 0x2F:
		return TagTemplateTypeParameter
	case 0x30:
		return TagTemplateValueParameter
	case 0x31:
		return TagThrownType
	case 0x32:
		return TagTryBlock
	case 0x33:
		return TagVariantPart
	case 0x34:
		return TagVariable
	case 0x35:
		return TagVolatileType
	case 0x36:
		return TagDwarfProcedure
	case 0x37:
		return TagRestrictType
	case 0x38:
		return TagInterfaceType
	case 0x39:
		return TagNamespace
	case 0x3A:
		return TagImportedModule
	case 0x3B:
		return TagUnspecifiedType
	case 0x3C:
		return TagPartialUnit
	case 0x3D:
		return TagImportedUnit
	case 0x3F:
		return TagCondition
	case 0x40:
		return TagSharedType
	case 0x41:
		return TagTypeUnit
	case 0x42:
		return TagRvalueReferenceType
	case 0x43:
		return TagTemplateAlias
	case 0x4080:
		return TagLoUser
	case 0xFFFF:
		return TagHiUser
	default:
		return TagUnknown
	}
}

// At classifies a DW_AT value.
type At int

// At values, DWARF 2-4.
const (
	AtEnd At = iota
	AtSibling
	AtLocation
	AtName
	AtOrdering
	AtSubscrData
	AtByteSize
	AtBitOffset
	AtBitSize
	AtElementList
	AtStmtList
	AtLowPc
	AtHighPc
	AtLanguage
	AtMember
	AtDiscr
	AtDiscrValue
	AtVisibility
	AtImport
	AtStringLength
	AtCommonReference
	AtCompDir
	AtConstValue
	AtContainingType
	AtDefaultValue
	AtInline
	AtIsOptional
	AtLowerBound
	AtProducer
	AtPrototyped
	AtReturnAddr
	AtStartScope
	AtBitStride
	AtUpperBound
	AtAbstractOrigin
	AtAccessibility
	AtAddressClass
	AtArtificial
	AtBaseTypes
	AtCallingConvention
	AtCount
	AtDataMemberLocation
	AtDeclColumn
	AtDeclFile
	AtDeclLine
	AtDeclaration
	AtDiscrList
	AtEncoding
	AtExternal
	AtFrameBase
	AtFriend
	AtIdentifierCase
	AtMacroInfo
	AtNamelistItems
	AtPriority
	AtSegment
	AtSpecification
	AtStaticLink
	AtType
	AtUseLocation
	AtVariableParameter
	AtVirtuality
	AtVtableElemLocation
	AtAllocated
	AtAssociated
	AtDataLocation
	AtByteStride
	AtEntryPc
	AtUseUTF8
	AtExtension
	AtRanges
	AtTrampoline
	AtCallColumn
	AtCallFile
	AtCallLine
	AtDescription
	AtBinaryScale
	AtDecimalScale
	AtSmall
	AtDecimalSign
	AtDigitCount
	AtPictureString
	AtMutable
	AtThreadsScaled
	AtExplicit
	AtObjectPointer
	AtEndianity
	AtElemental
	AtPure
	AtRecursive
	AtSignature
	AtMainSubprogram
	AtDataBitOffset
	AtConstExpr
	AtEnumClass
	AtLinkageName
	AtUnknown
)

// ClassifyAt maps a raw ULEB128-decoded attribute name to an At.
func ClassifyAt(v uint64) At {
	switch v {
	case 0x0:
		return AtEnd
	case 0x1:
		return AtSibling
	case 0x2:
		return AtLocation
	case 0x3:
		return AtName
	case 0x9:
		return AtOrdering
	case 0xA:
		return AtSubscrData
	case 0xB:
		return AtByteSize
	case 0xC:
		return AtBitOffset
	case 0xD:
		return AtBitSize
	case 0xF:
		return AtElementList
	case 0x10:
		return AtStmtList
	case 0x11:
		return AtLowPc
	case 0x12:
		return AtHighPc
	case 0x13:
		return AtLanguage
	case 0x14:
		return AtMember
	case 0x15:
		return AtDiscr
	case 0x16:
		return AtDiscrValue
	case 0x17:
		return AtVisibility
	case 0x18:
		return AtImport
	case 0x19:
		return AtStringLength
	case 0x1A:
		return AtCommonReference
	case 0x1B:
		return AtCompDir
	case 0x1C:
		return AtConstValue
	case 0x1D:
		return AtContainingType
	case 0x1E:
		return AtDefaultValue
	case 0x20:
		return AtInline
	case 0x21:
		return AtIsOptional
	case 0x22:
		return AtLowerBound
	case 0x25:
		return AtProducer
	case 0x27:
		return AtPrototyped
	case 0x2A:
		return AtReturnAddr
	case 0x2C:
		return AtStartScope
	case 0x2E:
		return AtBitStride
	case 0x2F:
		return AtUpperBound
	case 0x31:
		return AtAbstractOrigin
	case 0x32:
		return AtAccessibility
	case 0x33:
		return AtAddressClass
	case 0x34:
		return AtArtificial
	case 0x35:
		return AtBaseTypes
	case 0x36:
		return AtCallingConvention
	case 0x37:
		return AtCount
	case 0x38:
		return AtDataMemberLocation
	case 0x39:
		return AtDeclColumn
	case 0x3A:
		return AtDeclFile
	case 0x3B:
		return AtDeclLine
	case 0x3C:
		return AtDeclaration
	case 0x3D:
		return AtDiscrList
	case 0x3E:
		return AtEncoding
	case 0x3F:
		return AtExternal
	case 0x40:
		return AtFrameBase
	case 0x41:
		return AtFriend
	case 0x42:
		return AtIdentifierCase
	case 0x43:
		return AtMacroInfo
	case 0x44:
		return AtNamelistItems
	case 0x45:
		return AtPriority
	case 0x46:
		return AtSegment
	case 0x47:
		return AtSpecification
	case 0x48:
		return AtStaticLink
	case 0x49:
		return AtType
	case 0x4A:
		return AtUseLocation
	case 0x4B:
		return AtVariableParameter
	case 0x4C:
		return AtVirtuality
	case 0x4D:
		return AtVtableElemLocation
	case 0x4E:
		return AtAllocated
	case 0x4F:
		return AtAssociated
	case 0x50:
		return AtDataLocation
	case 0x51:
		return AtByteStride
	case 0x52:
		return AtEntryPc
	case 0x53:
		return AtUseUTF8
	case 0x54:
		return AtExtension
	case 0x55:
		return AtRanges
	case 0x56:
		return AtTrampoline
	case 0x57:
		return AtCallColumn
	case 0x58:
		return AtCallFile
	case 0x59:
		return AtCallLine
	case 0x5A:
		return AtDescription
	case 0x5B:
		return AtBinaryScale
	case 0x5C:
		return AtDecimalScale
	case 0x5D:
		return AtSmall
	case 0x5E:
		return AtDecimalSign
	case 0x5F:
		return AtDigitCount
	case 0x60:
		return AtPictureString
	case 0x61:
		return AtMutable
	case 0x62:
		return AtThreadsScaled
	case 0x63:
		return AtExplicit
	case 0x64:
		return AtObjectPointer
	case 0x65:
		return AtEndianity
	case 0x66:
		return AtElemental
	case 0x67:
		return AtPure
	case 0x68:
		return AtRecursive
	case 0x69:
		return AtSignature
	case 0x6A:
		return AtMainSubprogram
	case 0x6B:
		return AtDataBitOffset
	case 0x6C:
		return AtConstExpr
	case 0x6D:
		return AtEnumClass
	case 0x6E:
		return AtLinkageName
	default:
		return AtUnknown
	}
}

// Form classifies a DW_FORM value.
type Form int

// Form values, DWARF 2-4.
const (
	FormEnd Form = iota
	FormAddr
	FormBlock2
	FormBlock4
	FormData2
	FormData4
	FormData8
	FormString
	FormBlock
	FormBlock1
	FormData1
	FormFlag
	FormSdata
	FormStrp
	FormUdata
	FormRefAddr
	FormRef1
	FormRef2
	FormRef4
	FormRef8
	FormRefUdata
	FormIndirect
	FormSecOffset
	FormExprloc
	FormFlagPresent
	FormRefSig8
	FormUnknown
)

// ClassifyForm maps a raw ULEB128-decoded form value to a Form.
func ClassifyForm(v uint64) Form {
	switch v {
	case 0x0:
		return FormEnd
	case 0x1:
		return FormAddr
	case 0x3:
		return FormBlock2
	case 0x4:
		return FormBlock4
	case 0x5:
		return FormData2
	case 0x6:
		return FormData4
	case 0x7:
		return FormData8
	case 0x8:
		return FormString
	case 0x9:
		return FormBlock
	case 0xA:
		return FormBlock1
	case 0xB:
		return FormData1
	case 0xC:
		return FormFlag
	case 0xD:
		return FormSdata
	case 0xE:
		return FormStrp
	case 0xF:
		return FormUdata
	case 0x10:
		return FormRefAddr
	case 0x11:
		return FormRef1
	case 0x12:
		return FormRef2
	case 0x13:
		return FormRef4
	case 0x14:
		return FormRef8
	case 0x15:
		return FormRefUdata
	case 0x16:
		return FormIndirect
	case 0x17:
		return FormSecOffset
	case 0x18:
		return FormExprloc
	case 0x19:
		return FormFlagPresent
	case 0x20:
		return FormRefSig8
	default:
		return FormUnknown
	}
}

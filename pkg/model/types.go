package model

import internalmodel "github.com/goliatone/go-regform/internal/model"

// FieldType re-exports the internal FieldType enumeration.
type FieldType = internalmodel.FieldType

const (
	FieldTypeString  = internalmodel.FieldTypeString
	FieldTypeBoolean = internalmodel.FieldTypeBoolean
)

// Widget re-exports the internal Widget enumeration.
type Widget = internalmodel.Widget

const (
	WidgetText     = internalmodel.WidgetText
	WidgetRadio    = internalmodel.WidgetRadio
	WidgetSelect   = internalmodel.WidgetSelect
	WidgetCheckbox = internalmodel.WidgetCheckbox
)

const (
	ValidationRuleRequired  = internalmodel.ValidationRuleRequired
	ValidationRuleMinLength = internalmodel.ValidationRuleMinLength
	ValidationRuleMaxLength = internalmodel.ValidationRuleMaxLength
	ValidationRuleOneOf     = internalmodel.ValidationRuleOneOf
)

type ValidationRule = internalmodel.ValidationRule
type Option = internalmodel.Option
type Field = internalmodel.Field
type FormModel = internalmodel.FormModel

package viewmodel

// TableView is an in-memory View: it keeps the last published form, the table
// rows and every reported error.
type TableView struct {
	Form   Form
	Table  Table
	Errors []error
}

func NewTableView() *TableView {
	return &TableView{Form: NewForm()}
}

func (v *TableView) PatchForm(f Form) error {
	v.Form = f
	return nil
}

func (v *TableView) AppendRow(r Row) error {
	v.Table.Append(r)
	return nil
}

func (v *TableView) ReplaceRow(r Row) error {
	v.Table.Replace(r)
	return nil
}

func (v *TableView) ClearTable() error {
	v.Table.Clear()
	return nil
}

func (v *TableView) ReportError(err error) error {
	v.Errors = append(v.Errors, err)
	return nil
}

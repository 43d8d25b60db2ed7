package orgchart

const (
	AddNewEmployeeMessage = "orgchart.add_new_employee"
	EmployeeAddedMessage  = "orgchart.employee_added"
)

// AddNewEmployeeData は社員追加ワークフローを起動するためのデータです。
// Info / Manager を指定するとコマンドファクトリの既定値より優先されます。
type AddNewEmployeeData struct {
	Info    NewEmployeeInfoSource
	Manager ManagerSource
}

// MessageName implements appcontroller.Message.
func (AddNewEmployeeData) MessageName() string { return AddNewEmployeeMessage }

// EmployeeAddedEvent は社員の保存完了後に発行されるイベントです。
type EmployeeAddedEvent struct {
	Employee *Employee
}

// MessageName implements appcontroller.Message.
func (EmployeeAddedEvent) MessageName() string { return EmployeeAddedMessage }

package blazor

const DefaultSaveCommandName = "SaveAsync"

// ListFormOptions selects the optional fragments of a list page.
type ListFormOptions struct {
	IncludeCreateButton bool `json:"include_create_button" yaml:"include_create_button" mapstructure:"include_create_button"`
	IncludeDeleteButton bool `json:"include_delete_button" yaml:"include_delete_button" mapstructure:"include_delete_button"`
	EnableMultiSelect   bool `json:"enable_multi_select" yaml:"enable_multi_select" mapstructure:"enable_multi_select"`
}

func DefaultListFormOptions() ListFormOptions {
	return ListFormOptions{
		IncludeCreateButton: true,
		IncludeDeleteButton: true,
	}
}

// DetailFormOptions configures the edit form of a detail page.
type DetailFormOptions struct {
	SaveCommandName string `json:"save_command_name" yaml:"save_command_name" mapstructure:"save_command_name"`
}

func DefaultDetailFormOptions() DetailFormOptions {
	return DetailFormOptions{SaveCommandName: DefaultSaveCommandName}
}
